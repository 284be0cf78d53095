package domain

// Trade side values as recorded in the OrderClerk export.
const (
	SideLong  = 1
	SideShort = -1
)
