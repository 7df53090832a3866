package model

// Action names an operation guarded by the authorization gate.
type Action string

const (
	ActionPostMessage       Action = "post_message"
	ActionViewAuthor        Action = "view_author"
	ActionElevateMembership Action = "elevate_membership"
)
