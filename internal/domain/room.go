package domain

type RoomName string

// HistoryCapacity bounds the message lines a room retains.
// The oldest line is evicted first once the bound is hit.
const HistoryCapacity = 100
