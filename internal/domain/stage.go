package domain

// Stage is a workflow progress label computed from a snapshot. It is never stored.
type Stage string

// Stages in progress order.
const (
	StageSetup           Stage = "SETUP"
	StageSpeakerInvite   Stage = "SPEAKER_INVITE"
	StageScheduleConfirm Stage = "SCHEDULE_CONFIRM"
	StageAttendeeInvite  Stage = "ATTENDEE_INVITE"
	StageReminderReady   Stage = "REMINDER_READY"
	StageComplete        Stage = "COMPLETE"
)

// Stages lists every stage in progress order.
var Stages = []Stage{
	StageSetup, StageSpeakerInvite, StageScheduleConfirm,
	StageAttendeeInvite, StageReminderReady, StageComplete,
}

// Index returns the stage's position in Stages, or -1.
func (s Stage) Index() int {
	for i, st := range Stages {
		if st == s {
			return i
		}
	}
	return -1
}

// ResolveStage classifies a snapshot. First matching rule wins:
//
//  1. no title                                  -> SETUP
//  2. no CONFIRMED speaker but some INVITED     -> SPEAKER_INVITE
//     CONFIRMED speaker, no confirmed datetime  -> SCHEDULE_CONFIRM
//  3. confirmed datetime and registrations      -> ATTENDEE_INVITE
//  4. confirmed datetime                        -> REMINDER_READY
//  5. otherwise                                 -> SETUP
//
// COMPLETE is never produced. A nil snapshot resolves to SETUP.
func ResolveStage(s *Snapshot) Stage {
	if s == nil || s.Config.Title == "" {
		return StageSetup
	}
	confirmed := false
	invited := false
	for _, sp := range s.Speakers {
		switch sp.Status {
		case SpeakerStatusConfirmed:
			confirmed = true
		case SpeakerStatusInvited:
			invited = true
		}
	}
	dt := s.Config.ConfirmedDatetime
	if !confirmed {
		if invited {
			return StageSpeakerInvite
		}
	} else if dt == "" {
		return StageScheduleConfirm
	}
	if dt != "" && s.Counts.Registered > 0 {
		return StageAttendeeInvite
	}
	if dt != "" {
		return StageReminderReady
	}
	return StageSetup
}
