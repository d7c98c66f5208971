package kv

import "fmt"

// ActiveUsersKey holds the global user id -> last seen (unix ms) map.
const ActiveUsersKey = "analytics:active_users"

func SquadKey(squadID string) string {
	return "squad:" + squadID
}

// SquadListKey indexes the squads a user leads.
func SquadListKey(userID string) string {
	return "squad:list:" + userID
}

// SquadMemberKey indexes the squads a user joined as a non-leader.
func SquadMemberKey(userID string) string {
	return "squad:member:" + userID
}

func ChatMessageKey(messageID string) string {
	return "chat:" + messageID
}

func SquadChatKey(squadID string) string {
	return "chat:squad:" + squadID
}

func ContributionKey(squadID, userID string) string {
	return fmt.Sprintf("contrib:%s:%s", squadID, userID)
}

// QueryBucketKey is the per-day query counter bucket; date is YYYY-MM-DD.
func QueryBucketKey(date string) string {
	return "analytics:queries:" + date
}

func TokenBucketKey(date string) string {
	return "analytics:tokens:" + date
}

func PayoutKey(payoutID string) string {
	return "payout:" + payoutID
}

func SquadPayoutsKey(squadID string) string {
	return "payout:squad:" + squadID
}
