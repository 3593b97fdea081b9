package domain

import "fmt"

// Every line the server puts on the wire is formatted here, so the
// protocol text lives in one place.

func RoomMessage(room RoomName, from Username, text string) string {
	return fmt.Sprintf("[%s] %s: %s", room, from, text)
}

func PrivateMessage(from Username, text string) string {
	return fmt.Sprintf("[Private from %s]: %s", from, text)
}

func JoinedChatNotice(user Username) string {
	return fmt.Sprintf("%s has joined the chat", user)
}

func LeftChatNotice(user Username) string {
	return fmt.Sprintf("%s has left the chat", user)
}

func JoinedRoomNotice(user Username, room RoomName) string {
	return fmt.Sprintf("%s has joined %s", user, room)
}

func LeftRoomNotice(user Username, room RoomName) string {
	return fmt.Sprintf("%s has left %s", user, room)
}

func JoinedRoomConfirmation(room RoomName) string {
	return fmt.Sprintf("Joined room: %s", room)
}

func LeftRoomConfirmation(room RoomName) string {
	return fmt.Sprintf("Left room: %s", room)
}
