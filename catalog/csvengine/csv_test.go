package csvengine_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarium/catalog"
	. "librarium/catalog/csvengine"
)

func Test_ReadAll_When_TableFileIsAbsent_CreatesItWithHeader(t *testing.T) {
	// setup
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)

	// act
	rows, err := store.ReadAll(ctx, catalog.BooksTable)

	// assert
	assert.NoError(t, err)
	assert.Empty(t, rows)

	content, readErr := os.ReadFile(filepath.Join(dir, "books.csv"))
	require.NoError(t, readErr)
	assert.Equal(t, "book_id,title,author,genre,year,available\n", string(content))
}

func Test_WriteAll_Then_ReadAll_PreservesRowOrderAndValues(t *testing.T) {
	// setup
	ctx := context.Background()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	// arrange
	first := catalog.BuildBook("B001", "Dune", "Frank Herbert", "Sci-Fi", 1965, true)
	second := catalog.BuildBook("B002", "Hyperion", "Dan Simmons", "Sci-Fi", 1989, false)

	// act
	err = store.WriteAll(ctx, catalog.BooksTable, catalog.Rows{first.ToRow(), second.ToRow()})
	require.NoError(t, err)

	rows, err := store.ReadAll(ctx, catalog.BooksTable)

	// assert
	assert.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "B001", rows[0]["book_id"])
	assert.Equal(t, "True", rows[0]["available"])
	assert.Equal(t, "B002", rows[1]["book_id"])
	assert.Equal(t, "False", rows[1]["available"])
}

func Test_WriteAll_IsAFullRewrite(t *testing.T) {
	// setup
	ctx := context.Background()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	book := catalog.BuildBook("B001", "Dune", "Frank Herbert", "Sci-Fi", 1965, true)
	require.NoError(t, store.WriteAll(ctx, catalog.BooksTable, catalog.Rows{book.ToRow(), book.ToRow(), book.ToRow()}))

	// act
	err = store.WriteAll(ctx, catalog.BooksTable, catalog.Rows{book.ToRow()})
	require.NoError(t, err)

	rows, err := store.ReadAll(ctx, catalog.BooksTable)

	// assert
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
}

func Test_ReadAll_When_RowHasWrongFieldCount_Fails(t *testing.T) {
	// setup
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)

	// arrange
	content := "book_id,title,author,genre,year,available\nB001,Dune,Frank Herbert\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "books.csv"), []byte(content), 0o644))

	// act
	_, err = store.ReadAll(ctx, catalog.BooksTable)

	// assert
	assert.ErrorIs(t, err, catalog.ErrMalformedRow)
}

func Test_ReadAll_When_HeaderDoesNotMatchSchema_Fails(t *testing.T) {
	// setup
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)

	// arrange
	require.NoError(t, os.WriteFile(filepath.Join(dir, "books.csv"), []byte("id,name\n"), 0o644))

	// act
	_, err = store.ReadAll(ctx, catalog.BooksTable)

	// assert
	assert.ErrorIs(t, err, catalog.ErrMalformedRow)
}

func Test_ReadAll_When_FileIsCompletelyEmpty_BehavesLikeAnEmptyTable(t *testing.T) {
	// setup
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "books.csv"), []byte(""), 0o644))

	// act
	rows, err := store.ReadAll(ctx, catalog.BooksTable)

	// assert
	assert.NoError(t, err)
	assert.Empty(t, rows)
}

func Test_WriteAll_LeavesNoTempFilesBehind(t *testing.T) {
	// setup
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)

	// act
	book := catalog.BuildBook("B001", "Dune", "Frank Herbert", "Sci-Fi", 1965, true)
	require.NoError(t, store.WriteAll(ctx, catalog.BooksTable, catalog.Rows{book.ToRow()}))

	// assert
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	require.Len(t, entries, 1)
	assert.Equal(t, "books.csv", entries[0].Name())
}

func Test_NewStore_When_EmptyDirSupplied_Fails(t *testing.T) {
	// act
	_, err := NewStore("")

	// assert
	assert.ErrorIs(t, err, catalog.ErrEmptyDataDirSupplied)
}

func Test_Store_With_CustomDelimiter(t *testing.T) {
	// setup
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewStore(dir, WithDelimiter(';'))
	require.NoError(t, err)

	// act
	member := catalog.BuildMember("M001", "Alice", "alice@x.com", "555-1111", "CS", mustDate(t, "2024-03-15"))
	require.NoError(t, store.WriteAll(ctx, catalog.MembersTable, catalog.Rows{member.ToRow()}))

	rows, err := store.ReadAll(ctx, catalog.MembersTable)

	// assert
	assert.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "alice@x.com", rows[0]["email"])

	content, readErr := os.ReadFile(filepath.Join(dir, "members.csv"))
	require.NoError(t, readErr)
	assert.Contains(t, string(content), "member_id;name;email")
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()

	date, err := catalog.ParseDate(value)
	require.NoError(t, err)

	return date
}

