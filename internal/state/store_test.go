package state_test

import (
	"testing"

	"github.com/matryer/is"

	"organizo/internal/service"
	"organizo/internal/state"
)

func task(id, title string) service.Task {
	return service.Task{
		ID:       id,
		Title:    title,
		Priority: service.PriorityMedium,
		Status:   service.StatusToDo,
	}
}

func TestStore_StartsLoading(t *testing.T) {
	is := is.New(t)

	s := state.NewStore[service.Task]()
	is.Equal(s.Phase(), state.Loading)
	is.Equal(s.Len(), 0)
	is.Equal(s.Err(), "")
}

func TestStore_ReplaceMovesToReady(t *testing.T) {
	is := is.New(t)

	s := state.NewStore[service.Task]()
	s.Replace([]service.Task{task("t1", "one"), task("t2", "two")})

	is.Equal(s.Phase(), state.Ready)
	is.Equal(s.Len(), 2)

	// the stored list is a copy, not an alias of the caller's slice
	in := []service.Task{task("t3", "three")}
	s.Replace(in)
	in[0].Title = "mutated"
	got, ok := s.Get("t3")
	is.True(ok)
	is.Equal(got.Title, "three")
}

func TestStore_FailCapturesMessageVerbatim(t *testing.T) {
	is := is.New(t)

	s := state.NewStore[service.Task]()
	s.Fail("Failed to fetch tasks: 503")

	is.Equal(s.Phase(), state.Errored)
	is.Equal(s.Err(), "Failed to fetch tasks: 503")
	is.Equal(s.Len(), 0)

	// a later successful fetch clears the error
	s.Replace(nil)
	is.Equal(s.Phase(), state.Ready)
	is.Equal(s.Err(), "")
}

func TestStore_UpsertAppendsNewID(t *testing.T) {
	is := is.New(t)

	s := state.NewStore[service.Task]()
	s.Replace(nil)
	s.Upsert(task("t1", "created"))

	is.Equal(s.Len(), 1)
	got, ok := s.Get("t1")
	is.True(ok)
	is.Equal(got.Title, "created")

	// upserting the same id twice must not duplicate it
	s.Upsert(task("t1", "created"))
	is.Equal(s.Len(), 1)
}

func TestStore_UpsertReplacesOnlyMatchingEntry(t *testing.T) {
	is := is.New(t)

	s := state.NewStore[service.Task]()
	sibling := task("t2", "sibling")
	sibling.Assignee = "u9"
	s.Replace([]service.Task{task("t1", "original"), sibling})

	updated := task("t1", "renamed")
	updated.Assignee = "u2"
	s.Upsert(updated)

	got, ok := s.Get("t1")
	is.True(ok)
	is.Equal(got, updated) // entry replaced entirely by the canonical object

	before, ok := s.Get("t2")
	is.True(ok)
	is.Equal(before, sibling) // sibling byte-identical before and after
}

func TestStore_Remove(t *testing.T) {
	is := is.New(t)

	s := state.NewStore[service.Task]()
	s.Replace([]service.Task{task("t1", "one"), task("t2", "two"), task("t3", "three")})

	is.True(s.Remove("t2"))
	is.Equal(s.Len(), 2)
	_, ok := s.Get("t2")
	is.True(!ok)

	// others retain identity and field values
	one, _ := s.Get("t1")
	is.Equal(one.Title, "one")
	three, _ := s.Get("t3")
	is.Equal(three.Title, "three")

	is.True(!s.Remove("t2"))
}

func TestStore_PrependKeepsNewestFirst(t *testing.T) {
	is := is.New(t)

	s := state.NewStore[service.Notification]()
	s.Replace([]service.Notification{{ID: "n1", Message: "old"}})
	s.Prepend(service.Notification{ID: "n2", Message: "new"})

	items := s.Items()
	is.Equal(len(items), 2)
	is.Equal(items[0].ID, "n2")
	is.Equal(items[1].ID, "n1")
}

func TestStore_ItemsReturnsCopy(t *testing.T) {
	is := is.New(t)

	s := state.NewStore[service.Task]()
	s.Replace([]service.Task{task("t1", "one")})

	items := s.Items()
	items[0].Title = "mutated"

	got, _ := s.Get("t1")
	is.Equal(got.Title, "one")
}
