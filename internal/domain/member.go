package domain

import "strconv"

// Profile is the display meta a member publishes through the messaging side.
type Profile struct {
	UserID string `json:"userId"`
	Nick   string `json:"nick"`
	Avatar string `json:"avatar"`
}

// GroupID is the messaging group that backs the room.
func (id RoomID) GroupID() string {
	return strconv.FormatUint(uint64(id), 10)
}

func (id RoomID) String() string { return id.GroupID() }

// ParseRoomID accepts the decimal form used as group id.
func ParseRoomID(s string) (RoomID, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return RoomID(v), nil
}
