package core

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkeye/Chat/internal/domain"
)

func TestRoom_Membership(t *testing.T) {
	req := require.New(t)
	room := NewRoomService("general")

	req.Equal(domain.RoomName("general"), room.Name())
	req.Zero(room.MemberCount())

	room.AddMember("alice")
	room.AddMember("bob")
	// adding twice is a no-op
	room.AddMember("alice")

	req.Equal(2, room.MemberCount())
	req.ElementsMatch([]domain.Username{"alice", "bob"}, room.MembersSnapshot())

	room.RemoveMember("alice")
	req.Equal(1, room.MemberCount())
	req.ElementsMatch([]domain.Username{"bob"}, room.MembersSnapshot())
}

func TestRoom_HistoryBound(t *testing.T) {
	req := require.New(t)
	room := NewRoomService("general")

	for i := 0; i < 150; i++ {
		room.AppendHistory(fmt.Sprintf("msg-%d", i))
	}

	// only the 100 most recent survive, oldest-first
	got := room.History(100)
	req.Len(got, 100)
	req.Equal("msg-50", got[0])
	req.Equal("msg-149", got[99])
}

func TestRoom_HistoryTail(t *testing.T) {
	req := require.New(t)
	room := NewRoomService("general")

	for i := 0; i < 20; i++ {
		room.AppendHistory(fmt.Sprintf("msg-%d", i))
	}

	got := room.History(5)
	req.Equal([]string{"msg-15", "msg-16", "msg-17", "msg-18", "msg-19"}, got)

	// asking for more than retained returns everything
	req.Len(room.History(500), 20)
}

func TestRoom_ConcurrentAppendAndRead(t *testing.T) {
	room := NewRoomService("general")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				room.AppendHistory(fmt.Sprintf("w%d-%d", n, j))
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = room.History(10)
				_ = room.MembersSnapshot()
			}
		}()
	}
	wg.Wait()

	require.Len(t, room.History(0), domain.HistoryCapacity)
}
