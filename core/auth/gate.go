package auth

// Operation names a gated portal action. Every service entry point checks
// the session against the capability table before touching storage.
type Operation string

const (
	OpUserCreate Operation = "user:create"
	OpUserUpdate Operation = "user:update"
	OpUserDelete Operation = "user:delete"
	OpUserList   Operation = "user:list"

	OpStudentCreate   Operation = "student:create"
	OpStudentUpdate   Operation = "student:update"
	OpStudentDelete   Operation = "student:delete"
	OpStudentList     Operation = "student:list"
	OpStudentReadSelf Operation = "student:read-self"

	OpCourseCreate  Operation = "course:create"
	OpCourseUpdate  Operation = "course:update"
	OpCourseDelete  Operation = "course:delete"
	OpCourseList    Operation = "course:list"
	OpCourseReadOwn Operation = "course:read-own"

	OpAttendanceMark     Operation = "attendance:mark"
	OpAttendanceList     Operation = "attendance:list"
	OpAttendanceReadSelf Operation = "attendance:read-self"

	OpMarksUpsert   Operation = "marks:upsert"
	OpMarksList     Operation = "marks:list"
	OpMarksReadSelf Operation = "marks:read-self"

	OpAnnouncementCreate Operation = "announcement:create"
	OpAnnouncementRead   Operation = "announcement:read"

	OpFeedbackCreate Operation = "feedback:create"
	OpFeedbackRead   Operation = "feedback:read"

	OpPasswordChange Operation = "password:change"
)

type operationSet map[Operation]struct{}

func newOperationSet(ops ...Operation) operationSet {
	set := make(operationSet, len(ops))
	for _, op := range ops {
		set[op] = struct{}{}
	}
	return set
}

// capabilities is the static role → operation-set table.
// Ownership rules finer than a role (a teacher only touching their own
// courses, a student only reading their own records) are enforced by the
// owning service on top of this table.
var capabilities = map[Role]operationSet{
	RoleAdmin: newOperationSet(
		OpUserCreate, OpUserUpdate, OpUserDelete, OpUserList,
		OpStudentCreate, OpStudentUpdate, OpStudentDelete, OpStudentList,
		OpCourseCreate, OpCourseUpdate, OpCourseDelete, OpCourseList,
		OpAttendanceMark, OpAttendanceList,
		OpMarksUpsert, OpMarksList,
		OpAnnouncementCreate, OpAnnouncementRead,
		OpFeedbackRead,
		OpPasswordChange,
	),
	RoleTeacher: newOperationSet(
		OpCourseReadOwn,
		OpAttendanceMark,
		OpMarksUpsert,
		OpAnnouncementCreate, OpAnnouncementRead,
		OpPasswordChange,
	),
	RoleStudent: newOperationSet(
		OpStudentReadSelf,
		OpAttendanceReadSelf,
		OpMarksReadSelf,
		OpAnnouncementRead,
		OpFeedbackCreate,
		OpPasswordChange,
	),
}

// DeniedReason qualifies a denial for diagnostics; the user-facing
// message stays uniform.
type DeniedReason string

const (
	DeniedUnauthenticated  DeniedReason = "unauthenticated"
	DeniedInsufficientRole DeniedReason = "insufficient_role"
)

type DeniedError struct {
	Op     Operation
	Reason DeniedReason
}

func (e *DeniedError) Error() string { return deniedUniformMessage }

const deniedUniformMessage = "not permitted"

// Authorize allows or denies the requested operation for the session's role.
// Anonymous sessions are always denied.
func Authorize(sess *Session, op Operation) error {
	p, ok := sess.Current()
	if !ok {
		return &DeniedError{Op: op, Reason: DeniedUnauthenticated}
	}
	if _, ok := capabilities[p.Role][op]; !ok {
		return &DeniedError{Op: op, Reason: DeniedInsufficientRole}
	}
	return nil
}

// IsDenied reports whether err is an authorization denial.
func IsDenied(err error) bool {
	_, ok := err.(*DeniedError)
	return ok
}
