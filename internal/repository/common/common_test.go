package common

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestTranslatePQError(t *testing.T) {
	plain := errors.New("connection refused")
	syntax := &pq.Error{Code: "42601"}

	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "unique violation", in: &pq.Error{Code: "23505"}, want: ErrAlreadyExists},
		{name: "foreign key violation", in: &pq.Error{Code: "23503"}, want: ErrReferenceNotFound},
		{name: "wrapped unique violation", in: fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), want: ErrAlreadyExists},
		{name: "other pq error", in: syntax, want: syntax},
		{name: "not a pq error", in: plain, want: plain},
		{name: "nil", in: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TranslatePQError(tt.in))
		})
	}
}

func TestBatchInserter_Statement(t *testing.T) {
	bi := NewBatchInserter(nil, "INSERT INTO planets (name, description)", 2, 10)
	bi.values = append(bi.values, "Hoth", "ice", "Endor", "forest")
	bi.rowCount = 2

	assert.Equal(t, "INSERT INTO planets (name, description) VALUES ($1, $2), ($3, $4)", bi.statement())
}

func TestBatchInserter_AddChecksFieldCount(t *testing.T) {
	bi := NewBatchInserter(nil, "INSERT INTO planets (name, description)", 2, 10)

	err := bi.Add(context.Background(), "Hoth")

	assert.Error(t, err)
	assert.Equal(t, 0, bi.rowCount)
}

func TestBatchInserter_FlushWithoutRowsIsNoop(t *testing.T) {
	bi := NewBatchInserter(nil, "INSERT INTO planets (name)", 1, 0)

	assert.NoError(t, bi.Flush(context.Background()))
	assert.Equal(t, 0, bi.Inserted())
	assert.Equal(t, 100, bi.batchSize)
}
