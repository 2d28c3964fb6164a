package models

import "strconv"

// Job is a posting by a Member.
type Job struct {
	JobID                  int64   `json:"job_id"`
	MemberUserID           int64   `json:"member_user_id"`
	RequiredCaregivingType *string `json:"required_caregiving_type"`
	OtherRequirements      *string `json:"other_requirements"`
	DatePosted             *Date   `json:"date_posted"`
}

func (j *Job) Validate() error {
	return requireID("member_user_id", j.MemberUserID)
}

// JobApplicationKey identifies an application; it never changes after creation.
type JobApplicationKey struct {
	CaregiverUserID int64
	JobID           int64
}

func (k JobApplicationKey) String() string {
	return strconv.FormatInt(k.CaregiverUserID, 10) + "/" + strconv.FormatInt(k.JobID, 10)
}

// JobApplication records a caregiver applying to a job.
type JobApplication struct {
	CaregiverUserID int64 `json:"caregiver_user_id"`
	JobID           int64 `json:"job_id"`
	DateApplied     *Date `json:"date_applied"`
}

func (a *JobApplication) Key() JobApplicationKey {
	return JobApplicationKey{CaregiverUserID: a.CaregiverUserID, JobID: a.JobID}
}

func (a *JobApplication) Validate() error {
	if err := requireID("caregiver_user_id", a.CaregiverUserID); err != nil {
		return err
	}
	return requireID("job_id", a.JobID)
}
