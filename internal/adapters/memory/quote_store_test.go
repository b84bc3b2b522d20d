package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/jsamuelsen/quote-api/internal/domain"
	"github.com/jsamuelsen/quote-api/internal/platform/idgen"
)

// sequentialIDs issues predictable ids for assertions.
type sequentialIDs struct {
	mu sync.Mutex
	n  int
}

func (s *sequentialIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.n++

	return fmt.Sprintf("id-%d", s.n)
}

type QuoteStoreSuite struct {
	suite.Suite

	ctx   context.Context
	store *QuoteStore
}

func (s *QuoteStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewQuoteStore(&sequentialIDs{}, WithQuotes(SeedQuotes()...))
}

func TestQuoteStoreSuite(t *testing.T) {
	suite.Run(t, new(QuoteStoreSuite))
}

func (s *QuoteStoreSuite) TestList_PreservesSeedOrder() {
	quotes := s.store.List(s.ctx)

	s.Require().Len(quotes, 3)
	s.Equal([]string{"q1", "q2", "q3"}, ids(quotes))
}

func (s *QuoteStoreSuite) TestList_ReturnsSnapshot() {
	quotes := s.store.List(s.ctx)
	quotes[0].Text = "mutated"

	fresh, err := s.store.Get(s.ctx, "q1")
	s.Require().NoError(err)
	s.Equal("Be yourself; everyone else is already taken.", fresh.Text)
}

func (s *QuoteStoreSuite) TestCreate_AppendsWithFreshID() {
	created, err := s.store.Create(s.ctx, "X", "Y")
	s.Require().NoError(err)

	s.Equal(domain.Quote{ID: "id-1", Text: "X", Author: "Y"}, created)
	s.Equal([]string{"q1", "q2", "q3", "id-1"}, ids(s.store.List(s.ctx)))
}

func (s *QuoteStoreSuite) TestCreate_StoresTrimmedValues() {
	created, err := s.store.Create(s.ctx, "  Text  ", " Author ")
	s.Require().NoError(err)

	s.Equal("Text", created.Text)
	s.Equal("Author", created.Author)
}

func (s *QuoteStoreSuite) TestCreate_RejectsBlankFields() {
	tests := []struct {
		name   string
		text   string
		author string
		fields []string
	}{
		{name: "empty text", text: "", author: "Author", fields: []string{"text"}},
		{name: "empty author", text: "Text", author: "", fields: []string{"author"}},
		{name: "whitespace only", text: " ", author: " ", fields: []string{"text", "author"}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.store.Create(s.ctx, tt.text, tt.author)

			var validationErr *domain.ValidationError
			s.Require().ErrorAs(err, &validationErr)
			s.Equal(tt.fields, validationErr.Fields)
			s.Equal(3, s.store.Len(s.ctx), "rejected input must not be stored")
		})
	}
}

func (s *QuoteStoreSuite) TestGet_RoundTripsCreatedQuote() {
	created, err := s.store.Create(s.ctx, "Text", "Author")
	s.Require().NoError(err)

	fetched, err := s.store.Get(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created, fetched)
}

func (s *QuoteStoreSuite) TestGet_UnknownID() {
	_, err := s.store.Get(s.ctx, "missing")

	s.True(domain.IsNotFound(err))
}

func (s *QuoteStoreSuite) TestDelete_RemovesExactlyOne() {
	removed, err := s.store.Delete(s.ctx, "q2")
	s.Require().NoError(err)

	s.Equal("q2", removed.ID)
	s.Equal("Austin Freeman", removed.Author)
	s.Equal([]string{"q1", "q3"}, ids(s.store.List(s.ctx)))

	_, err = s.store.Get(s.ctx, "q2")
	s.True(domain.IsNotFound(err))
}

func (s *QuoteStoreSuite) TestDelete_UnknownID() {
	_, err := s.store.Delete(s.ctx, "missing")

	s.True(domain.IsNotFound(err))
	s.Equal(3, s.store.Len(s.ctx))
}

func (s *QuoteStoreSuite) TestDelete_Twice() {
	_, err := s.store.Delete(s.ctx, "q1")
	s.Require().NoError(err)

	_, err = s.store.Delete(s.ctx, "q1")
	s.True(domain.IsNotFound(err))
}

func (s *QuoteStoreSuite) TestRandom_UsesPicker() {
	store := NewQuoteStore(&sequentialIDs{},
		WithQuotes(SeedQuotes()...),
		WithPicker(func(n int) int { return n - 1 }),
	)

	quote, err := store.Random(s.ctx)
	s.Require().NoError(err)
	s.Equal("q3", quote.ID)
}

func (s *QuoteStoreSuite) TestRandom_AlwaysReturnsStoredQuote() {
	stored := make(map[string]bool)
	for _, q := range s.store.List(s.ctx) {
		stored[q.ID] = true
	}

	for range 100 {
		quote, err := s.store.Random(s.ctx)
		s.Require().NoError(err)
		s.True(stored[quote.ID], "random returned unknown quote %q", quote.ID)
	}
}

func (s *QuoteStoreSuite) TestRandom_EmptyStore() {
	store := NewQuoteStore(&sequentialIDs{})

	_, err := store.Random(s.ctx)

	s.True(domain.IsEmptyCollection(err))
}

func (s *QuoteStoreSuite) TestRandom_EmptyAfterDeletingEverything() {
	for _, q := range s.store.List(s.ctx) {
		_, err := s.store.Delete(s.ctx, q.ID)
		s.Require().NoError(err)
	}

	_, err := s.store.Random(s.ctx)
	s.True(domain.IsEmptyCollection(err))
	s.NotNil(s.store.List(s.ctx))
	s.Empty(s.store.List(s.ctx))
}

func (s *QuoteStoreSuite) TestCheck() {
	s.Equal("quote-store", s.store.Name())
	s.NoError(s.store.Check(s.ctx))

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	s.ErrorIs(s.store.Check(ctx), context.Canceled)
}

func (s *QuoteStoreSuite) TestCheck_WriterHoldsLock() {
	s.store.mu.Lock()

	ctx, cancel := context.WithTimeout(s.ctx, 30*time.Millisecond)
	defer cancel()

	err := s.store.Check(ctx)
	s.ErrorIs(err, context.DeadlineExceeded)
	s.ErrorContains(err, "lock unavailable")

	released := make(chan struct{})
	time.AfterFunc(20*time.Millisecond, func() {
		s.store.mu.Unlock()
		close(released)
	})

	wait, cancelWait := context.WithTimeout(s.ctx, time.Second)
	defer cancelWait()

	s.NoError(s.store.Check(wait), "check should pass once the writer releases")
	<-released
}

func TestNewQuoteStore_PanicsWithoutIDGenerator(t *testing.T) {
	assert.Panics(t, func() {
		NewQuoteStore(nil)
	})
}

func TestQuoteStore_LenTracksCreatesMinusDeletes(t *testing.T) {
	ctx := context.Background()
	store := NewQuoteStore(idgen.New())

	var created []string
	for i := range 10 {
		q, err := store.Create(ctx, fmt.Sprintf("text %d", i), "author")
		require.NoError(t, err)
		created = append(created, q.ID)
	}

	for _, id := range created[:4] {
		_, err := store.Delete(ctx, id)
		require.NoError(t, err)
	}

	assert.Equal(t, 6, store.Len(ctx))
	assert.Len(t, store.List(ctx), 6)
}

func TestQuoteStore_CreateIDsAreDistinct(t *testing.T) {
	ctx := context.Background()
	store := NewQuoteStore(idgen.New())

	seen := make(map[string]struct{})
	for i := range 200 {
		q, err := store.Create(ctx, fmt.Sprintf("text %d", i), "author")
		require.NoError(t, err)

		_, dup := seen[q.ID]
		require.False(t, dup)
		seen[q.ID] = struct{}{}
	}
}

func TestQuoteStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewQuoteStore(idgen.New(), WithQuotes(SeedQuotes()...))

	const writers = 20

	var wg sync.WaitGroup

	createdIDs := make(chan string, writers)

	for i := range writers {
		wg.Add(2)

		go func() {
			defer wg.Done()

			q, err := store.Create(ctx, fmt.Sprintf("text %d", i), "author")
			assert.NoError(t, err)
			createdIDs <- q.ID
		}()

		go func() {
			defer wg.Done()

			for _, q := range store.List(ctx) {
				assert.NotEmpty(t, q.ID)
				assert.NotEmpty(t, q.Text)
			}

			_, err := store.Random(ctx)
			assert.NoError(t, err)
		}()
	}

	wg.Wait()
	close(createdIDs)

	for id := range createdIDs {
		_, err := store.Delete(ctx, id)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"q1", "q2", "q3"}, ids(store.List(ctx)))
}

func ids(quotes []domain.Quote) []string {
	out := make([]string, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, q.ID)
	}

	return out
}
