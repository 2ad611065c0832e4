package apierrors

const (
	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgTextTooLong        = "textTooLong"
	MsgTaskNotFound       = "taskNotFound"
	MsgTaskAlreadyExists  = "taskAlreadyExists"
	MsgUnauthorizedAuthor = "unauthorizedAuthor"
	MsgMissingToken       = "missingToken"
	MsgInvalidToken       = "invalidToken"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailFetchTask      = "failFetchTask"
	MsgFailUpdateTask     = "failUpdateTask"
)
