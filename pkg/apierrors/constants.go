package apierrors

// Message keys resolved through the translator bundle.
const (
	MsgInvalidPayload      = "invalidPayload"
	MsgInvalidID           = "invalidID"
	MsgInvalidCredentials  = "invalidCredentials"
	MsgPhoneTaken          = "phoneTaken"
	MsgProjectNotFound     = "projectNotFound"
	MsgTaskNotFound        = "taskNotFound"
	MsgUserNotFound        = "userNotFound"
	MsgProjectNotPublic    = "projectNotPublic"
	MsgBadProjectReference = "badProjectReference"
	MsgBadUserReference    = "badUserReference"
	MsgFailListProjects    = "failListProjects"
	MsgFailCreateProject   = "failCreateProject"
	MsgFailCopyProject     = "failCopyProject"
	MsgFailUpdateProject   = "failUpdateProject"
	MsgFailDeleteProject   = "failDeleteProject"
	MsgFailShare           = "failShare"
	MsgFailListTasks       = "failListTasks"
	MsgFailCreateTask      = "failCreateTask"
	MsgFailUpdateTask      = "failUpdateTask"
	MsgFailDeleteTask      = "failDeleteTask"
	MsgFailRegister        = "failRegister"
	MsgFailProfile         = "failProfile"
)

// CodeProjectNotPublic is the stable error code the share endpoints
// return alongside the translated message.
const CodeProjectNotPublic = "project_not_public"
