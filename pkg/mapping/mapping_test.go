package mapping

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeCSV writes a temp CSV file and returns its path
func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "replacements.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ValidTable(t *testing.T) {
	path := writeCSV(t, "from,to\nAcme Corp,Globex Inc\n  old text  ,  new text  \n")

	m, err := Load(path, nil)
	require.NoError(t, err)

	want := []Entry{
		{From: "Acme Corp", To: "Globex Inc"},
		{From: "old text", To: "new text"},
	}
	if diff := cmp.Diff(want, m.Entries()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, m.Len())
}

func TestLoad_ExtraColumnsIgnored(t *testing.T) {
	path := writeCSV(t, "note,from,to\nsome note,a,b\n")

	m, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{From: "a", To: "b"}}, m.Entries())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), nil)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoad_MissingColumn(t *testing.T) {
	for _, header := range []string{"from,target", "source,to", "a,b"} {
		path := writeCSV(t, header+"\nx,y\n")
		_, err := Load(path, nil)
		assert.True(t, errors.Is(err, ErrSchema), "header %q", header)
	}
}

func TestLoad_EmptyFromRowsSkipped(t *testing.T) {
	logger, hook := test.NewNullLogger()
	path := writeCSV(t, "from,to\n   ,ignored\nkeep,kept\n")

	m, err := Load(path, logger)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())

	warning := findEntry(hook, logrus.WarnLevel)
	require.NotNil(t, warning)
	// Row numbering starts at 2, row 1 being the header
	assert.Contains(t, warning.Message, "row 2")
}

func TestLoad_AllRowsEmpty(t *testing.T) {
	path := writeCSV(t, "from,to\n,x\n  ,y\n")
	_, err := Load(path, nil)
	assert.True(t, errors.Is(err, ErrEmpty))
}

func TestLoad_DuplicateFromLastWins(t *testing.T) {
	logger, hook := test.NewNullLogger()
	path := writeCSV(t, "from,to\nfirst,1\ndup,old\nsecond,2\ndup,new\n")

	m, err := Load(path, logger)
	require.NoError(t, err)

	// Last "to" wins, but the entry keeps its original position
	want := []Entry{
		{From: "first", To: "1"},
		{From: "dup", To: "new"},
		{From: "second", To: "2"},
	}
	assert.Equal(t, want, m.Entries())

	warning := findEntry(hook, logrus.WarnLevel)
	require.NotNil(t, warning)
	assert.Contains(t, warning.Message, `"dup"`)
}

func TestPreview(t *testing.T) {
	m := New(
		Entry{From: "a", To: "1"},
		Entry{From: "b", To: "2"},
		Entry{From: "c", To: "3"},
	)

	assert.Len(t, m.Preview(2), 2)
	assert.Equal(t, Entry{From: "a", To: "1"}, m.Preview(2)[0])
	assert.Len(t, m.Preview(10), 3)
}

func TestNew_Dedup(t *testing.T) {
	m := New(
		Entry{From: "a", To: "1"},
		Entry{From: "", To: "dropped"},
		Entry{From: "a", To: "2"},
	)
	assert.Equal(t, []Entry{{From: "a", To: "2"}}, m.Entries())
}

// findEntry returns the first recorded log entry at the given level
func findEntry(hook *test.Hook, level logrus.Level) *logrus.Entry {
	for _, entry := range hook.AllEntries() {
		if entry.Level == level {
			return entry
		}
	}
	return nil
}
