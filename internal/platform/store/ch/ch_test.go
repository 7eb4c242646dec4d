package ch

import (
	"context"
	"testing"
)

// TestOpen_BadDSN rejects a malformed URL before dialing
func TestOpen_BadDSN(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), Config{URL: "://not-a-dsn"})
	if err == nil {
		t.Fatal("Open accepted a malformed DSN")
	}
}

// TestInsert_RejectsBadShape refuses payloads that are not row batches
func TestInsert_RejectsBadShape(t *testing.T) {
	t.Parallel()

	cl := &CH{}
	if err := cl.Insert(context.Background(), "t", struct{}{}); err == nil {
		t.Fatal("Insert accepted a non batch payload")
	}
	if err := cl.Insert(context.Background(), "t", []any{1, 2}); err == nil {
		t.Fatal("Insert accepted a flat slice payload")
	}
}

func TestBuildClientInfo_Products(t *testing.T) {
	t.Parallel()

	info := BuildClientInfo("api", "v1")
	if len(info.Products) == 0 {
		t.Fatal("no products in client info")
	}
	if info.Products[0].Name != "codesift" {
		t.Fatalf("first product = %q, want codesift", info.Products[0].Name)
	}
}
