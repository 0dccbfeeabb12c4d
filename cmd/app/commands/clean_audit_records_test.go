package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunCleanAuditRecords_InvalidDays(t *testing.T) {
	err := RunCleanAuditRecords(context.Background(), -1, "text")

	require.Error(t, err)
	require.Contains(t, err.Error(), "days must be a positive number")
}
