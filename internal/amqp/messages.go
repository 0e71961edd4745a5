package amqp

import (
	"encoding/json"
	"time"
)

// BatchTransaction is one record inside an imported batch. Dates travel as
// ISO strings and are validated by the worker, not here.
type BatchTransaction struct {
	Name        string `json:"name"`
	AmountCents int64  `json:"amount_cents"`
	Type        string `json:"type"`
	Date        string `json:"date"`
}

// TransactionBatchMessage carries a batch of ad-hoc transactions from an
// external importer (bank export, CSV upload) to the import worker.
type TransactionBatchMessage struct {
	Source       string             `json:"source"`
	Transactions []BatchTransaction `json:"transactions"`
	Timestamp    time.Time          `json:"timestamp"`
}

func NewTransactionBatchMessage(source string, txs []BatchTransaction) *TransactionBatchMessage {
	return &TransactionBatchMessage{
		Source:       source,
		Transactions: txs,
		Timestamp:    time.Now(),
	}
}

func (m *TransactionBatchMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionBatchMessageFromJSON(data []byte) (*TransactionBatchMessage, error) {
	var msg TransactionBatchMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ReportExportMessage asks the worker to push one month's summary to the
// configured spreadsheet. The worker recomputes the summary from the store.
type ReportExportMessage struct {
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Timestamp time.Time `json:"timestamp"`
}

func NewReportExportMessage(year, month int) *ReportExportMessage {
	return &ReportExportMessage{
		Year:      year,
		Month:     month,
		Timestamp: time.Now(),
	}
}

func (m *ReportExportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ReportExportMessageFromJSON(data []byte) (*ReportExportMessage, error) {
	var msg ReportExportMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
