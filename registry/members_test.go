package registry_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarium/catalog"
	"librarium/catalog/csvengine"
	. "librarium/registry"
)

func memberRegistryForTest(t *testing.T) MemberRegistry {
	t.Helper()

	store, err := csvengine.NewStore(t.TempDir())
	require.NoError(t, err, "error creating store in test setup")

	registry, err := NewMemberRegistry(store, WithClock(fixedClock("2024-03-15")))
	require.NoError(t, err, "creating the registry failed")

	return registry
}

func uniqueEmail(t *testing.T) string {
	t.Helper()
	return fmt.Sprintf("%s@example.com", uuid.NewString())
}

func Test_RegisterMember_AssignsIDAndStampsJoinDate(t *testing.T) {
	// setup
	ctx := context.Background()
	registry := memberRegistryForTest(t)

	// act
	member, err := registry.Register(ctx, "alice smith", "Alice@X.com", " 555-1111 ", "computer science")

	// assert
	assert.NoError(t, err)
	assert.Equal(t, "M001", member.ID)
	assert.Equal(t, "Alice Smith", member.Name)
	assert.Equal(t, "alice@x.com", member.Email)
	assert.Equal(t, "555-1111", member.Phone)
	assert.Equal(t, "Computer Science", member.Department)
	assert.Equal(t, "2024-03-15", catalog.FormatDate(member.JoinDate))
}

func Test_RegisterMember_When_EmailAlreadyExists_FailsAndKeepsTheRegistryUnchanged(t *testing.T) {
	// setup
	ctx := context.Background()
	registry := memberRegistryForTest(t)

	// arrange
	_, err := registry.Register(ctx, "Bob", "bob@x.com", "555-2222", "History")
	require.NoError(t, err)

	// act - same email, different casing
	_, err = registry.Register(ctx, "Robert", "BOB@X.COM", "555-3333", "History")

	// assert
	assert.ErrorIs(t, err, catalog.ErrDuplicateEmail)

	members, listErr := registry.List(ctx)
	require.NoError(t, listErr)
	assert.Len(t, members, 1, "member count must remain unchanged at 1")
}

func Test_SearchMembers_MatchesNameEmailOrDepartment(t *testing.T) {
	// setup
	ctx := context.Background()
	registry := memberRegistryForTest(t)

	// arrange
	_, err := registry.Register(ctx, "Alice Smith", uniqueEmail(t), "555-1111", "Computer Science")
	require.NoError(t, err)
	_, err = registry.Register(ctx, "Bob Jones", "bob@history.example.com", "555-2222", "History")
	require.NoError(t, err)

	// act + assert
	byName, err := registry.Search(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "M001", byName[0].ID)

	byEmail, err := registry.Search(ctx, "history.example")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "M002", byEmail[0].ID)

	byDepartment, err := registry.Search(ctx, "computer")
	require.NoError(t, err)
	require.Len(t, byDepartment, 1)
	assert.Equal(t, "M001", byDepartment[0].ID)
}

func Test_FindMemberByID_When_MemberIsAbsent_Fails(t *testing.T) {
	// setup
	ctx := context.Background()
	registry := memberRegistryForTest(t)

	// act
	_, err := registry.FindByID(ctx, "M999")

	// assert
	assert.ErrorIs(t, err, catalog.ErrMemberNotFound)
}
