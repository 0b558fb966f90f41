package ledger

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hupe1980/corebench/internal/conv"
)

var (
	// ErrDuplicateRun is returned when a run id has already been recorded.
	ErrDuplicateRun = errors.New("ledger: run already recorded")
	// ErrInvalidEntry is returned when a stored item cannot be decoded.
	ErrInvalidEntry = errors.New("ledger: invalid entry")
)

// Client is the interface for DynamoDB operations.
type Client interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Entry is the summary of one run.
type Entry struct {
	RunID      string
	SeedCRC    uint16
	KnownID    int // -1 when the seeds match no published configuration
	ListCRC    uint16
	MatrixCRC  uint16
	StateCRC   uint16
	FinalCRC   uint16
	Iterations uint32
	Contexts   int
	Duration   time.Duration
	Score      float64 // iterations per second
	Valid      bool
	Archive    string // blob name of the archived report, if any
	RecordedAt time.Time
}

// Ledger writes and queries run entries.
type Ledger struct {
	client Client
	table  string
}

// New creates a ledger backed by the given table.
func New(client Client, table string) *Ledger {
	return &Ledger{client: client, table: table}
}

// Table returns the DynamoDB table name.
func (l *Ledger) Table() string {
	return l.table
}

// Record stores e. It fails with ErrDuplicateRun if the run id exists.
func (l *Ledger) Record(ctx context.Context, e Entry) error {
	if e.RunID == "" {
		return fmt.Errorf("%w: empty run id", ErrInvalidEntry)
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now().UTC()
	}

	_, err := l.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(l.table),
		Item:                encode(e),
		ConditionExpression: aws.String("attribute_not_exists(run_id)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return fmt.Errorf("%w: %s", ErrDuplicateRun, e.RunID)
		}
		return fmt.Errorf("ledger: put item: %w", err)
	}
	return nil
}

// Query returns entries recorded for seedCRC, newest run id first.
// A limit <= 0 returns all entries.
func (l *Ledger) Query(ctx context.Context, seedCRC uint16, limit int) ([]Entry, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(l.table),
		KeyConditionExpression: aws.String("seedcrc = :crc"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":crc": &types.AttributeValueMemberS{Value: FormatCRC(seedCRC)},
		},
		ScanIndexForward: aws.Bool(false),
	}
	if limit > 0 {
		input.Limit = aws.Int32(int32(min(limit, 1<<30))) //nolint:gosec // clamped
	}

	var entries []Entry
	paginator := dynamodb.NewQueryPaginator(l.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("ledger: query: %w", err)
		}
		for _, item := range page.Items {
			e, err := decode(item)
			if err != nil {
				return nil, err
			}
			entries = append(entries, e)
			if limit > 0 && len(entries) == limit {
				return entries, nil
			}
		}
	}
	return entries, nil
}

// FormatCRC renders a checksum the way reports print it.
func FormatCRC(v uint16) string {
	return fmt.Sprintf("0x%04x", v)
}

func parseCRC(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

func encode(e Entry) map[string]types.AttributeValue {
	item := map[string]types.AttributeValue{
		"seedcrc":     &types.AttributeValueMemberS{Value: FormatCRC(e.SeedCRC)},
		"run_id":      &types.AttributeValueMemberS{Value: e.RunID},
		"known_id":    &types.AttributeValueMemberN{Value: strconv.Itoa(e.KnownID)},
		"crclist":     &types.AttributeValueMemberS{Value: FormatCRC(e.ListCRC)},
		"crcmatrix":   &types.AttributeValueMemberS{Value: FormatCRC(e.MatrixCRC)},
		"crcstate":    &types.AttributeValueMemberS{Value: FormatCRC(e.StateCRC)},
		"crcfinal":    &types.AttributeValueMemberS{Value: FormatCRC(e.FinalCRC)},
		"iterations":  &types.AttributeValueMemberN{Value: strconv.FormatUint(uint64(e.Iterations), 10)},
		"contexts":    &types.AttributeValueMemberN{Value: strconv.Itoa(e.Contexts)},
		"duration_ns": &types.AttributeValueMemberN{Value: strconv.FormatInt(int64(e.Duration), 10)},
		"score":       &types.AttributeValueMemberN{Value: strconv.FormatFloat(e.Score, 'f', -1, 64)},
		"valid":       &types.AttributeValueMemberBOOL{Value: e.Valid},
		"recorded_at": &types.AttributeValueMemberS{Value: e.RecordedAt.Format(time.RFC3339Nano)},
	}
	if e.Archive != "" {
		item["archive"] = &types.AttributeValueMemberS{Value: e.Archive}
	}
	return item
}

func decode(item map[string]types.AttributeValue) (Entry, error) {
	var (
		e   Entry
		err error
	)
	d := decoder{item: item}

	e.SeedCRC = d.crc("seedcrc")
	e.RunID = d.str("run_id")
	e.KnownID = d.num32("known_id")
	e.ListCRC = d.crc("crclist")
	e.MatrixCRC = d.crc("crcmatrix")
	e.StateCRC = d.crc("crcstate")
	e.FinalCRC = d.crc("crcfinal")
	e.Iterations = uint32(d.num("iterations")) //nolint:gosec // written from uint32
	e.Contexts = d.num32("contexts")
	e.Duration = time.Duration(d.num("duration_ns"))
	e.Score = d.float("score")
	e.Archive = d.optStr("archive")

	if v, ok := item["valid"].(*types.AttributeValueMemberBOOL); ok {
		e.Valid = v.Value
	} else {
		d.fail("valid")
	}
	if e.RecordedAt, err = time.Parse(time.RFC3339Nano, d.str("recorded_at")); err != nil && d.err == nil {
		d.err = fmt.Errorf("%w: recorded_at: %v", ErrInvalidEntry, err)
	}
	return e, d.err
}

// decoder extracts typed attributes and keeps the first failure.
type decoder struct {
	item map[string]types.AttributeValue
	err  error
}

func (d *decoder) fail(name string) {
	if d.err == nil {
		d.err = fmt.Errorf("%w: attribute %q", ErrInvalidEntry, name)
	}
}

func (d *decoder) optStr(name string) string {
	if v, ok := d.item[name].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func (d *decoder) str(name string) string {
	v, ok := d.item[name].(*types.AttributeValueMemberS)
	if !ok {
		d.fail(name)
		return ""
	}
	return v.Value
}

func (d *decoder) crc(name string) uint16 {
	v, err := parseCRC(d.str(name))
	if err != nil {
		d.fail(name)
	}
	return v
}

func (d *decoder) num(name string) int64 {
	v, ok := d.item[name].(*types.AttributeValueMemberN)
	if !ok {
		d.fail(name)
		return 0
	}
	n, err := strconv.ParseInt(v.Value, 10, 64)
	if err != nil {
		d.fail(name)
	}
	return n
}

// num32 reads a count or id stored from an int; it must fit 32 bits.
func (d *decoder) num32(name string) int {
	v, err := conv.Int64ToInt32(d.num(name))
	if err != nil {
		d.fail(name)
	}
	return int(v)
}

func (d *decoder) float(name string) float64 {
	v, ok := d.item[name].(*types.AttributeValueMemberN)
	if !ok {
		d.fail(name)
		return 0
	}
	f, err := strconv.ParseFloat(v.Value, 64)
	if err != nil {
		d.fail(name)
	}
	return f
}
