package amqp

import (
	"testing"
	"time"
)

func TestNewTransactionBatchMessage(t *testing.T) {
	txs := []BatchTransaction{
		{Name: "Groceries", AmountCents: 4599, Type: "expense", Date: "2024-03-05"},
		{Name: "Refund", AmountCents: 1200, Type: "income", Date: "2024-03-07"},
	}

	msg := NewTransactionBatchMessage("bank-csv", txs)

	if msg.Source != "bank-csv" {
		t.Errorf("Source = %q, want %q", msg.Source, "bank-csv")
	}
	if len(msg.Transactions) != 2 {
		t.Errorf("len(Transactions) = %d, want 2", len(msg.Transactions))
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("Timestamp should be recent")
	}
}

func TestTransactionBatchMessage_JSON(t *testing.T) {
	timestamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	msg := &TransactionBatchMessage{
		Source: "bank-csv",
		Transactions: []BatchTransaction{
			{Name: "Groceries", AmountCents: 4599, Type: "expense", Date: "2024-03-05"},
		},
		Timestamp: timestamp,
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := TransactionBatchMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("TransactionBatchMessageFromJSON() error = %v", err)
	}

	if parsed.Source != msg.Source {
		t.Errorf("Parsed Source = %q, want %q", parsed.Source, msg.Source)
	}
	if len(parsed.Transactions) != 1 || parsed.Transactions[0].AmountCents != 4599 {
		t.Errorf("Parsed Transactions = %+v", parsed.Transactions)
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Parsed Timestamp = %v, want %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestTransactionBatchMessage_InvalidJSON(t *testing.T) {
	invalidJSON := []byte(`{"source": 42, "transactions": "nope"}`)

	if _, err := TransactionBatchMessageFromJSON(invalidJSON); err == nil {
		t.Error("TransactionBatchMessageFromJSON() should fail with invalid JSON")
	}
}

func TestReportExportMessage_JSON(t *testing.T) {
	msg := NewReportExportMessage(2024, 3)

	if msg.Year != 2024 || msg.Month != 3 {
		t.Errorf("got year=%d month=%d", msg.Year, msg.Month)
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := ReportExportMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("ReportExportMessageFromJSON() error = %v", err)
	}
	if parsed.Year != 2024 || parsed.Month != 3 {
		t.Errorf("parsed year=%d month=%d", parsed.Year, parsed.Month)
	}
}
