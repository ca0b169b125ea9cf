package excel

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"evalreport/domain/core"
	"evalreport/domain/evaluation"
	"evalreport/internal"
	apperrors "evalreport/internal/errors"
	"evalreport/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReader(t *testing.T, config ReaderConfig) *SheetReader {
	t.Helper()
	r, err := NewSheetReader(config, internal.NewNopLogger())
	require.NoError(t, err)
	return r
}

func writeFixture(t *testing.T, sheets []evaluation.Sheet, decoys ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "evaluation.xlsx")
	require.NoError(t, testkit.WriteWorkbook(path, sheets, decoys...))
	return path
}

func TestReadSheets_RoundTripsSampleWorkbook(t *testing.T) {
	path := writeFixture(t, testkit.SampleSheets(), "Summary", "Notes")
	r := newTestReader(t, DefaultReaderConfig())

	sheets, err := r.ReadSheets(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, testkit.SampleSheets(), sheets)
}

func TestReadSheets_FlattensToSameDatasetAsFixture(t *testing.T) {
	path := writeFixture(t, testkit.SampleSheets())
	r := newTestReader(t, DefaultReaderConfig())

	sheets, err := r.ReadSheets(context.Background(), path)
	require.NoError(t, err)

	want := testkit.Dataset(testkit.SampleSheets()...)
	got := testkit.Dataset(sheets...)
	require.Equal(t, want.Len(), got.Len())
	for i := 0; i < want.Len(); i++ {
		assert.Equal(t, want.Row(i), got.Row(i))
	}
}

func TestReadSheets_SkipsBrokenSheet(t *testing.T) {
	broken := evaluation.Sheet{
		Name: "F9C9", NumResponses: 1.0, Category: "network",
		Responses: []evaluation.Response{{ID: "", Actions: []evaluation.Action{{Name: "noop", Usefulness: 1.0}}}},
	}
	sheets := append(testkit.SampleSheets(), broken)
	path := writeFixture(t, sheets)
	r := newTestReader(t, DefaultReaderConfig())

	got, err := r.ReadSheets(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, got, 3)
	for _, s := range got {
		assert.NotEqual(t, "F9C9", s.Name)
	}
}

func TestReadSheets_StrictFailsOnBrokenSheet(t *testing.T) {
	broken := evaluation.Sheet{Name: "F9C9", NumResponses: "two"}
	path := writeFixture(t, []evaluation.Sheet{broken})
	r := newTestReader(t, ReaderConfig{StrictSheets: true})

	_, err := r.ReadSheets(context.Background(), path)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeParseError, apperrors.GetCode(err))
	assert.True(t, errors.Is(err, core.ErrSheetLayout))
}

func TestReadSheets_CustomPattern(t *testing.T) {
	path := writeFixture(t, testkit.SampleSheets())
	r := newTestReader(t, ReaderConfig{SheetPattern: `^F1C\d+$`})

	sheets, err := r.ReadSheets(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, sheets, 2)
	assert.Equal(t, "F1C1", sheets[0].Name)
	assert.Equal(t, "F1C2", sheets[1].Name)
}

func TestReadSheets_InvalidInput(t *testing.T) {
	r := newTestReader(t, DefaultReaderConfig())

	_, err := r.ReadSheets(context.Background(), filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetCode(err))

	txt := filepath.Join(t.TempDir(), "evaluation.txt")
	require.NoError(t, os.WriteFile(txt, []byte("not a workbook"), 0o644))
	_, err = r.ReadSheets(context.Background(), txt)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetCode(err))

	fake := filepath.Join(t.TempDir(), "evaluation.xlsx")
	require.NoError(t, os.WriteFile(fake, []byte("not a workbook"), 0o644))
	_, err = r.ReadSheets(context.Background(), fake)
	assert.Equal(t, apperrors.CodeParseError, apperrors.GetCode(err))
}

func TestReadSheets_CancelledContext(t *testing.T) {
	path := writeFixture(t, testkit.SampleSheets())
	r := newTestReader(t, DefaultReaderConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.ReadSheets(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewSheetReader_InvalidPattern(t *testing.T) {
	_, err := NewSheetReader(ReaderConfig{SheetPattern: "("}, internal.NewNopLogger())
	assert.Equal(t, apperrors.CodeConfigInvalid, apperrors.GetCode(err))
}
