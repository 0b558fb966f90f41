// Package ledger records validated benchmark runs in DynamoDB.
//
// Each run is one item keyed by its seed CRC (partition key) and run id
// (sort key). Writes are conditional so a run id can only be recorded once.
//
// Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name corebench-runs \
//	  --attribute-definitions AttributeName=seedcrc,AttributeType=S AttributeName=run_id,AttributeType=S \
//	  --key-schema AttributeName=seedcrc,KeyType=HASH AttributeName=run_id,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
package ledger
