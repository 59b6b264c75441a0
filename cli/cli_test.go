package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestConfig creates a config file pointing at a fresh CSV data
// directory and returns its path.
func writeTestConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "librarium.yaml")
	content := fmt.Sprintf("storage:\n  engine: csv\n  data_dir: %s\nlogging:\n  level: error\n",
		filepath.Join(dir, "data"))

	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func runCommand(t *testing.T, configPath string, stdin string, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", configPath}, args...))

	err := root.Execute()

	return out.String(), err
}

func Test_BooksAdd_ReportsTheAssignedID(t *testing.T) {
	// setup
	configPath := writeTestConfig(t)

	// act
	output, err := runCommand(t, configPath, "",
		"books", "add", "--title", "dune", "--author", "Frank Herbert", "--genre", "Sci-Fi", "--year", "1965")

	// assert
	require.NoError(t, err)
	assert.Contains(t, output, "Book 'Dune' added successfully with ID B001.")
}

func Test_BooksAdd_When_YearIsNotNumeric_Fails(t *testing.T) {
	// setup
	configPath := writeTestConfig(t)

	// act
	_, err := runCommand(t, configPath, "",
		"books", "add", "--title", "Dune", "--author", "Frank Herbert", "--genre", "Sci-Fi", "--year", "nope")

	// assert
	assert.Error(t, err)
}

func Test_BorrowAndReturn_ThroughSubcommands(t *testing.T) {
	// setup
	configPath := writeTestConfig(t)

	// arrange
	_, err := runCommand(t, configPath, "",
		"books", "add", "--title", "Dune", "--author", "Frank Herbert", "--genre", "Sci-Fi", "--year", "1965")
	require.NoError(t, err)

	_, err = runCommand(t, configPath, "",
		"members", "add", "--name", "Alice", "--email", "alice@x.com", "--phone", "555-1111", "--department", "CS")
	require.NoError(t, err)

	// act + assert - borrow
	output, err := runCommand(t, configPath, "", "borrow", "M001", "B001")
	require.NoError(t, err)
	assert.Contains(t, output, "transaction T0001")

	// act + assert - borrowing again fails while the book is out
	_, err = runCommand(t, configPath, "", "borrow", "M001", "B001")
	assert.Error(t, err)

	// act + assert - return
	output, err = runCommand(t, configPath, "", "return", "M001", "B001")
	require.NoError(t, err)
	assert.Contains(t, output, "Book B001 returned")
}

func Test_Return_When_NothingIsBorrowed_Fails(t *testing.T) {
	// setup
	configPath := writeTestConfig(t)

	// act
	_, err := runCommand(t, configPath, "", "return", "M001", "B001")

	// assert
	assert.Error(t, err)
}

func Test_ReportSummaryJSON(t *testing.T) {
	// setup
	configPath := writeTestConfig(t)

	// arrange
	_, err := runCommand(t, configPath, "",
		"books", "add", "--title", "Dune", "--author", "Frank Herbert", "--genre", "Sci-Fi", "--year", "1965")
	require.NoError(t, err)

	// act - JSON goes to stdout, so only assert the command succeeds
	_, err = runCommand(t, configPath, "", "report", "summary", "--json")

	// assert
	assert.NoError(t, err)
}

func Test_Menu_AddsABookAndExits(t *testing.T) {
	// setup
	configPath := writeTestConfig(t)

	// arrange - choice 10 adds a book, 0 exits
	input := "10\nDune\nFrank Herbert\nSci-Fi\n1965\n0\n"

	// act
	output, err := runCommand(t, configPath, input, "menu")

	// assert
	require.NoError(t, err)
	assert.Contains(t, output, "LIBRARY CATALOG MANAGER")
	assert.Contains(t, output, "Book 'Dune' added successfully with ID B001.")
	assert.Contains(t, output, "Goodbye!")
}

func Test_Menu_DomainFailuresKeepTheLoopRunning(t *testing.T) {
	// setup
	configPath := writeTestConfig(t)

	// arrange - borrowing with unknown IDs fails, then the menu must still accept exit
	input := "5\nM001\nB001\n0\n"

	// act
	output, err := runCommand(t, configPath, input, "menu")

	// assert
	require.NoError(t, err)
	assert.Contains(t, output, "Operation failed:")
	assert.Contains(t, output, "Goodbye!")
}

func Test_Menu_ExitsOnEndOfInput(t *testing.T) {
	// setup
	configPath := writeTestConfig(t)

	// act - no input at all
	_, err := runCommand(t, configPath, "", "menu")

	// assert
	assert.NoError(t, err)
}

func Test_Menu_InvalidChoiceIsReported(t *testing.T) {
	// setup
	configPath := writeTestConfig(t)

	// act
	output, err := runCommand(t, configPath, "42\n0\n", "menu")

	// assert
	require.NoError(t, err)
	assert.Contains(t, output, "Invalid choice")
}
