package state

// State is a state of the number recognizer.
type State uint8

const (
	Start State = iota
	Invalid
	S1
	S2
	Int
	Float
	Exponent
	Scientific
	// NumStates is the number of states.
	NumStates
)

var stateNames = [...]string{
	Start:      "start",
	Invalid:    "invalid",
	S1:         "s1",
	S2:         "s2",
	Int:        "int",
	Float:      "float",
	Exponent:   "exponent",
	Scientific: "scientific",
}

func (s State) String() string {
	if s < NumStates {
		return stateNames[s]
	}
	return "unknown"
}

var (
	intPattern   = [4]string{"5012", "1234", "-874", "+122"}
	floatPattern = [4]string{"35.54400", ".1234500", "-110.700", "+0.64400"}
	sciPattern   = [4]string{"5.500e+3", "-.123e-2", "-87e+832", "+0.6e-12"}
	errPattern   = [4]string{"T0.3e-1F", "-T.T++Tq", "1T3.4e4z", "34.0e-T^"}
)

// Init fills block with seed-selected tokens separated by commas and pads
// the remainder with zeros. The last byte is always zero.
func Init(block []byte, seed int16) {
	size := len(block) - 1
	total, next := 0, 0
	var pat string

	for total+next+1 < size {
		if next > 0 {
			copy(block[total:], pat[:next])
			block[total+next] = ','
			total += next + 1
		}

		seed++
		sel := (seed >> 3) & 0x3
		switch seed & 0x7 {
		case 0, 1, 2:
			pat, next = intPattern[sel], 4
		case 3, 4:
			pat, next = floatPattern[sel], 8
		case 5, 6:
			pat, next = sciPattern[sel], 8
		default:
			pat, next = errPattern[sel], 8
		}
	}

	clear(block[total:])
}

// Counts holds one counter per state.
type Counts [NumStates]uint32

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Transition recognizes the token starting at pos and returns its final state
// and the position after it. A comma ends the token and is consumed; a zero
// byte or the end of input ends it without being consumed. Every transition
// taken is counted in track.
func Transition(input []byte, pos int, track *Counts) (State, int) {
	state := Start

	for ; pos < len(input) && input[pos] != 0 && state != Invalid; pos++ {
		c := input[pos]
		if c == ',' {
			pos++
			break
		}

		switch state {
		case Start:
			switch {
			case isDigit(c):
				state = Int
			case c == '+' || c == '-':
				state = S1
			case c == '.':
				state = Float
			default:
				state = Invalid
				track[Invalid]++
			}
			track[Start]++
		case S1:
			switch {
			case isDigit(c):
				state = Int
			case c == '.':
				state = Float
			default:
				state = Invalid
			}
			track[S1]++
		case Int:
			switch {
			case c == '.':
				state = Float
				track[Int]++
			case !isDigit(c):
				state = Invalid
				track[Int]++
			}
		case Float:
			switch {
			case c == 'E' || c == 'e':
				state = S2
				track[Float]++
			case !isDigit(c):
				state = Invalid
				track[Float]++
			}
		case S2:
			if c == '+' || c == '-' {
				state = Exponent
			} else {
				state = Invalid
			}
			track[S2]++
		case Exponent:
			if isDigit(c) {
				state = Scientific
			} else {
				state = Invalid
			}
			track[Exponent]++
		case Scientific:
			if !isDigit(c) {
				state = Invalid
				track[Invalid]++
			}
		}
	}

	return state, pos
}

// Scan runs Transition over the whole input, counting final states in final
// and transitions in track.
func Scan(input []byte, final, track *Counts) {
	for pos := 0; pos < len(input) && input[pos] != 0; {
		var s State
		s, pos = Transition(input, pos, track)
		final[s]++
	}
}
