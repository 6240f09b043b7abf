// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestConnIDCtxKey(t *testing.T) {
	if ConnIDCtxKey.String() != "connID" {
		t.Errorf("expected 'connID', got '%s'", ConnIDCtxKey.String())
	}
}

func TestGetConnIDFromContext_Success(t *testing.T) {
	ctx := WithConnID(context.Background(), "conn-42")

	connID, ok := GetConnIDFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if connID != "conn-42" {
		t.Errorf("expected connID=conn-42, got %s", connID)
	}
}

func TestGetConnIDFromContext_Missing(t *testing.T) {
	connID, ok := GetConnIDFromContext(context.Background())

	if ok {
		t.Error("expected ok=false for missing key")
	}
	if connID != "" {
		t.Errorf("expected empty connID, got %s", connID)
	}
}

func TestGetConnIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), ConnIDCtxKey, 42)

	_, ok := GetConnIDFromContext(ctx)

	if ok {
		t.Error("expected ok=false for wrong value type")
	}
}
