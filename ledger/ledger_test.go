package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarium/catalog"
	"librarium/catalog/csvengine"
	. "librarium/ledger"
	"librarium/registry"
)

type testEnvironment struct {
	ledger  Ledger
	books   registry.BookRegistry
	members registry.MemberRegistry
	clock   *fakeClock
}

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.current
}

func (c *fakeClock) Advance(days int) {
	c.current = c.current.AddDate(0, 0, days)
}

func setupTestEnvironment(t *testing.T) testEnvironment {
	t.Helper()

	store, err := csvengine.NewStore(t.TempDir())
	require.NoError(t, err, "error creating store in test setup")

	clock := &fakeClock{current: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}

	books, err := registry.NewBookRegistry(store, registry.WithClock(clock.Now))
	require.NoError(t, err, "creating the book registry failed")

	members, err := registry.NewMemberRegistry(store, registry.WithClock(clock.Now))
	require.NoError(t, err, "creating the member registry failed")

	lgr, err := NewLedger(store, books, members, WithClock(clock.Now))
	require.NoError(t, err, "creating the ledger failed")

	return testEnvironment{ledger: lgr, books: books, members: members, clock: clock}
}

func givenBookAndMember(t *testing.T, env testEnvironment) (catalog.Book, catalog.Member) {
	t.Helper()

	ctx := context.Background()

	book, err := env.books.Register(ctx, "Dune", "Frank Herbert", "Sci-Fi", "1965")
	require.NoError(t, err, "error in arranging test data")

	member, err := env.members.Register(ctx, "Alice", "alice@x.com", "555-1111", "CS")
	require.NoError(t, err, "error in arranging test data")

	return book, member
}

func Test_Borrow_Then_Return_RestoresAvailability(t *testing.T) {
	// setup
	ctx := context.Background()
	env := setupTestEnvironment(t)

	// arrange
	book, member := givenBookAndMember(t, env)
	assert.Equal(t, "B001", book.ID)
	assert.Equal(t, "M001", member.ID)

	// act - borrow
	transaction, err := env.ledger.Borrow(ctx, member.ID, book.ID)

	// assert - borrow
	require.NoError(t, err)
	assert.Equal(t, "T0001", transaction.ID)
	assert.Equal(t, catalog.StatusBorrowed, transaction.Status)
	assert.Equal(t, "2024-05-01", catalog.FormatDate(transaction.BorrowDate))

	borrowed, err := env.books.FindByID(ctx, book.ID)
	require.NoError(t, err)
	assert.False(t, borrowed.Available)

	// act - return two days later
	env.clock.Advance(2)
	returned, err := env.ledger.Return(ctx, member.ID, book.ID)

	// assert - return
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusReturned, returned.Status)
	assert.Equal(t, "2024-05-03", catalog.FormatDate(returned.ReturnDate))
	assert.False(t, returned.ReturnDate.Before(returned.BorrowDate))

	restored, err := env.books.FindByID(ctx, book.ID)
	require.NoError(t, err)
	assert.True(t, restored.Available)

	transactions, err := env.ledger.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, catalog.StatusReturned, transactions[0].Status)
}

func Test_Borrow_When_BookIsAlreadyBorrowed_FailsAndLeavesTheLedgerUnchanged(t *testing.T) {
	// setup
	ctx := context.Background()
	env := setupTestEnvironment(t)

	// arrange
	book, member := givenBookAndMember(t, env)
	other, err := env.members.Register(ctx, "Bob", "bob@x.com", "555-2222", "History")
	require.NoError(t, err)

	_, err = env.ledger.Borrow(ctx, member.ID, book.ID)
	require.NoError(t, err)

	// act
	_, err = env.ledger.Borrow(ctx, other.ID, book.ID)

	// assert
	assert.ErrorIs(t, err, catalog.ErrBookUnavailable)

	transactions, listErr := env.ledger.ListAll(ctx)
	require.NoError(t, listErr)
	assert.Len(t, transactions, 1, "the failed borrow must not create a transaction")
}

func Test_Borrow_When_MemberIsNotRegistered_FailsWithoutCreatingATransaction(t *testing.T) {
	// setup
	ctx := context.Background()
	env := setupTestEnvironment(t)

	// arrange
	book, _ := givenBookAndMember(t, env)

	// act
	_, err := env.ledger.Borrow(ctx, "M999", book.ID)

	// assert
	assert.ErrorIs(t, err, catalog.ErrMemberNotFound)

	transactions, listErr := env.ledger.ListAll(ctx)
	require.NoError(t, listErr)
	assert.Empty(t, transactions)

	unchanged, findErr := env.books.FindByID(ctx, book.ID)
	require.NoError(t, findErr)
	assert.True(t, unchanged.Available)
}

func Test_Borrow_When_BookIsNotRegistered_Fails(t *testing.T) {
	// setup
	ctx := context.Background()
	env := setupTestEnvironment(t)

	// arrange
	_, member := givenBookAndMember(t, env)

	// act
	_, err := env.ledger.Borrow(ctx, member.ID, "B999")

	// assert
	assert.ErrorIs(t, err, catalog.ErrBookNotFound)
}

func Test_Return_When_NoActiveBorrowRecordExists_Fails(t *testing.T) {
	// setup
	ctx := context.Background()
	env := setupTestEnvironment(t)

	// arrange
	book, member := givenBookAndMember(t, env)

	// act
	_, err := env.ledger.Return(ctx, member.ID, book.ID)

	// assert
	assert.ErrorIs(t, err, catalog.ErrNoActiveBorrowRecord)
}

func Test_Return_Twice_FailsTheSecondTime(t *testing.T) {
	// setup
	ctx := context.Background()
	env := setupTestEnvironment(t)

	// arrange
	book, member := givenBookAndMember(t, env)
	_, err := env.ledger.Borrow(ctx, member.ID, book.ID)
	require.NoError(t, err)
	_, err = env.ledger.Return(ctx, member.ID, book.ID)
	require.NoError(t, err)

	// act
	_, err = env.ledger.Return(ctx, member.ID, book.ID)

	// assert
	assert.ErrorIs(t, err, catalog.ErrNoActiveBorrowRecord)
}

func Test_Overdue_UsesWholeDayDifferenceAndIsMonotonic(t *testing.T) {
	// setup
	ctx := context.Background()
	env := setupTestEnvironment(t)

	// arrange - two books borrowed 5 and 12 days ago
	bookOne, member := givenBookAndMember(t, env)
	bookTwo, err := env.books.Register(ctx, "Hyperion", "Dan Simmons", "Sci-Fi", "1989")
	require.NoError(t, err)

	_, err = env.ledger.Borrow(ctx, member.ID, bookOne.ID)
	require.NoError(t, err)

	env.clock.Advance(7)
	_, err = env.ledger.Borrow(ctx, member.ID, bookTwo.ID)
	require.NoError(t, err)

	env.clock.Advance(5)

	// act
	overdueDefault, err := env.ledger.Overdue(ctx, DefaultOverdueDays)
	require.NoError(t, err)

	overdueThree, err := env.ledger.Overdue(ctx, 3)
	require.NoError(t, err)

	overdueTwenty, err := env.ledger.Overdue(ctx, 20)
	require.NoError(t, err)

	// assert - bookOne is 12 days out, bookTwo 5 days
	require.Len(t, overdueDefault, 1)
	assert.Equal(t, bookOne.ID, overdueDefault[0].BookID)

	assert.Len(t, overdueThree, 2, "a smaller limit must return a superset")
	assert.Empty(t, overdueTwenty)

	for _, transaction := range overdueDefault {
		assert.Contains(t, overdueThree, transaction)
	}
}

func Test_Overdue_IgnoresReturnedTransactions(t *testing.T) {
	// setup
	ctx := context.Background()
	env := setupTestEnvironment(t)

	// arrange
	book, member := givenBookAndMember(t, env)
	_, err := env.ledger.Borrow(ctx, member.ID, book.ID)
	require.NoError(t, err)

	env.clock.Advance(10)
	_, err = env.ledger.Return(ctx, member.ID, book.ID)
	require.NoError(t, err)

	// act
	overdue, err := env.ledger.Overdue(ctx, DefaultOverdueDays)

	// assert
	assert.NoError(t, err)
	assert.Empty(t, overdue)
}

func Test_BorrowedByMember_ReturnsOnlyOpenTransactionsOfThatMember(t *testing.T) {
	// setup
	ctx := context.Background()
	env := setupTestEnvironment(t)

	// arrange
	bookOne, member := givenBookAndMember(t, env)
	bookTwo, err := env.books.Register(ctx, "Hyperion", "Dan Simmons", "Sci-Fi", "1989")
	require.NoError(t, err)
	other, err := env.members.Register(ctx, "Bob", "bob@x.com", "555-2222", "History")
	require.NoError(t, err)

	_, err = env.ledger.Borrow(ctx, member.ID, bookOne.ID)
	require.NoError(t, err)
	_, err = env.ledger.Borrow(ctx, other.ID, bookTwo.ID)
	require.NoError(t, err)
	_, err = env.ledger.Return(ctx, member.ID, bookOne.ID)
	require.NoError(t, err)

	// act
	aliceOpen, err := env.ledger.BorrowedByMember(ctx, member.ID)
	require.NoError(t, err)

	bobOpen, err := env.ledger.BorrowedByMember(ctx, other.ID)
	require.NoError(t, err)

	// assert
	assert.Empty(t, aliceOpen)
	require.Len(t, bobOpen, 1)
	assert.Equal(t, bookTwo.ID, bobOpen[0].BookID)
}
