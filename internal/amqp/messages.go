package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"moneymage/internal/sheets"
)

// TransactionBatchMessage carries a batch of bank transactions to import.
// The worker merges the batch into the stored ledger; records travel in
// wire form so the payload never depends on domain internals.
type TransactionBatchMessage struct {
	BatchID      string                     `json:"batch_id"`
	Source       string                     `json:"source,omitempty"`
	Year         int                        `json:"year"`
	Transactions []sheets.TransactionRecord `json:"transactions"`
	Timestamp    time.Time                  `json:"timestamp"`
}

// NewTransactionBatchMessage creates a batch message stamped with now.
func NewTransactionBatchMessage(batchID, source string, year int, records []sheets.TransactionRecord) *TransactionBatchMessage {
	return &TransactionBatchMessage{
		BatchID:      batchID,
		Source:       source,
		Year:         year,
		Transactions: records,
		Timestamp:    time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionBatchMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionBatchMessageFromJSON creates a message from JSON bytes
func TransactionBatchMessageFromJSON(data []byte) (*TransactionBatchMessage, error) {
	var msg TransactionBatchMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.BatchID == "" {
		return nil, fmt.Errorf("batch message missing batch_id")
	}
	if msg.Year == 0 {
		return nil, fmt.Errorf("batch message missing year")
	}
	return &msg, nil
}
