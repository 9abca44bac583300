// Package authz contains the single access-control decision point for the API.
// Every service entry point asks Decide before touching a resource, so the rule
// table below is the only place permissions are defined.
package authz

import "github.com/noah-isme/lms-go-api/internal/models"

// Action identifies an operation a caller wants to perform.
type Action string

const (
	// ActionCourseRead covers reads of a course and its lessons and assignments.
	ActionCourseRead Action = "course.read"
	// ActionCourseCreate covers creating a new course.
	ActionCourseCreate Action = "course.create"
	// ActionCourseModify covers updating or deleting a course and adding,
	// updating or deleting its lessons and assignments.
	ActionCourseModify Action = "course.modify"
	// ActionEnroll covers creating an enrollment.
	ActionEnroll Action = "enrollment.create"
	// ActionEnrollmentCancel covers a student cancelling their own enrollment.
	ActionEnrollmentCancel Action = "enrollment.cancel"
	// ActionEnrollmentComplete covers staff marking an enrollment completed.
	ActionEnrollmentComplete Action = "enrollment.complete"
	// ActionSubmissionCreate covers handing in or re-submitting work.
	ActionSubmissionCreate Action = "submission.create"
	// ActionSubmissionRead covers reading or listing submissions.
	ActionSubmissionRead Action = "submission.read"
	// ActionSubmissionGrade covers grading and resubmission requests.
	ActionSubmissionGrade Action = "submission.grade"
)

// Caller is the authenticated identity a decision is computed for. The zero
// value is an anonymous caller.
type Caller struct {
	Authenticated bool
	UserID        uint
	Role          models.Role
}

// Anonymous is the caller used for requests without credentials.
var Anonymous = Caller{}

// Resource carries the ownership facts a decision needs. Only the fields
// relevant to the action are consulted; the rest stay zero.
type Resource struct {
	// CoursePublished is true when the governing course is in the published state.
	CoursePublished bool
	// CourseOwnerID is the instructor that owns the governing course.
	CourseOwnerID uint
	// OwnerID is the student that owns the enrollment or submission.
	OwnerID uint
	// ActiveEnrollment is true when the caller holds an active enrollment in the
	// governing course.
	ActiveEnrollment bool
}

// Effect is the outcome of a policy decision.
type Effect int

const (
	// Allow grants the action.
	Allow Effect = iota
	// DenyUnauthenticated rejects because credentials are required but absent.
	DenyUnauthenticated
	// DenyForbidden rejects an authenticated caller lacking permission.
	DenyForbidden
	// DenyNotFound rejects while hiding that the resource exists at all. Used
	// for unpublished content so drafts cannot be enumerated.
	DenyNotFound
)

// Decision is the result of evaluating the rule table.
type Decision struct {
	Effect Effect
	Reason string
}

// Allowed reports whether the decision grants the action.
func (d Decision) Allowed() bool {
	return d.Effect == Allow
}

func allow() Decision {
	return Decision{Effect: Allow}
}

func denyUnauthenticated() Decision {
	return Decision{Effect: DenyUnauthenticated, Reason: "authentication required"}
}

func denyForbidden(reason string) Decision {
	return Decision{Effect: DenyForbidden, Reason: reason}
}

func denyNotFound(reason string) Decision {
	return Decision{Effect: DenyNotFound, Reason: reason}
}

func (c Caller) isRole(role models.Role) bool {
	return c.Authenticated && c.Role == role
}

func (c Caller) ownsCourse(res Resource) bool {
	return c.isRole(models.RoleInstructor) && c.UserID == res.CourseOwnerID
}

// Decide evaluates the rule table for the caller, action and resource facts.
// Admins are allowed everything; remaining rules are evaluated per action.
// Unpublished course reads deny as not-found rather than forbidden so that the
// existence of drafts never leaks to unauthorized readers.
func Decide(caller Caller, action Action, res Resource) Decision {
	if caller.isRole(models.RoleAdmin) {
		return allow()
	}

	switch action {
	case ActionCourseRead:
		if res.CoursePublished {
			return allow()
		}
		if caller.ownsCourse(res) {
			return allow()
		}
		return denyNotFound("unpublished course is hidden from non-owners")

	case ActionCourseCreate:
		if !caller.Authenticated {
			return denyUnauthenticated()
		}
		if caller.Role == models.RoleInstructor {
			return allow()
		}
		return denyForbidden("only instructors can create courses")

	case ActionCourseModify:
		if !caller.Authenticated {
			return denyUnauthenticated()
		}
		if caller.ownsCourse(res) {
			return allow()
		}
		return denyForbidden("only the owning instructor can modify a course")

	case ActionEnroll:
		if !caller.Authenticated {
			return denyUnauthenticated()
		}
		if caller.Role == models.RoleStudent {
			return allow()
		}
		return denyForbidden("only students can enroll")

	case ActionEnrollmentCancel:
		if !caller.Authenticated {
			return denyUnauthenticated()
		}
		if caller.Role == models.RoleStudent && caller.UserID == res.OwnerID {
			return allow()
		}
		return denyForbidden("students can only cancel their own enrollment")

	case ActionEnrollmentComplete:
		if !caller.Authenticated {
			return denyUnauthenticated()
		}
		if caller.ownsCourse(res) {
			return allow()
		}
		return denyForbidden("only course staff can complete an enrollment")

	case ActionSubmissionCreate:
		if !caller.Authenticated {
			return denyUnauthenticated()
		}
		if caller.Role != models.RoleStudent {
			return denyForbidden("only students can submit work")
		}
		if !res.ActiveEnrollment {
			return denyForbidden("an active enrollment in the course is required")
		}
		return allow()

	case ActionSubmissionRead:
		if !caller.Authenticated {
			return denyUnauthenticated()
		}
		if caller.Role == models.RoleStudent && caller.UserID == res.OwnerID {
			return allow()
		}
		if caller.ownsCourse(res) {
			return allow()
		}
		return denyForbidden("submissions are visible to their author and course staff")

	case ActionSubmissionGrade:
		if !caller.Authenticated {
			return denyUnauthenticated()
		}
		if caller.ownsCourse(res) {
			return allow()
		}
		return denyForbidden("only course staff can grade submissions")
	}

	return denyForbidden("unknown action")
}
