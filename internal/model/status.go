package model

import "fmt"

type MissionStatus int

const (
	MissionNotStarted MissionStatus = iota
	MissionInProgress
	MissionComplete
	MissionArchived
)

var missionStatusNames = map[MissionStatus]string{
	MissionNotStarted: "not_started",
	MissionInProgress: "in_progress",
	MissionComplete:   "complete",
	MissionArchived:   "archived",
}

func (s MissionStatus) String() string {
	if name, ok := missionStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("MissionStatus(%d)", int(s))
}

// IsTerminal reports whether normal flows may no longer mutate the mission.
func (s MissionStatus) IsTerminal() bool {
	return s == MissionComplete || s == MissionArchived
}

func ParseMissionStatus(v string) (MissionStatus, error) {
	for s, name := range missionStatusNames {
		if name == v {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown mission status %q", v)
}

func (s MissionStatus) MarshalText() ([]byte, error) {
	if _, ok := missionStatusNames[s]; !ok {
		return nil, fmt.Errorf("invalid mission status %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *MissionStatus) UnmarshalText(b []byte) error {
	parsed, err := ParseMissionStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

type PracticeSessionStatus int

const (
	PracticeInProgress PracticeSessionStatus = iota
	PracticeCompleted
	PracticeAbandoned
)

var practiceStatusNames = map[PracticeSessionStatus]string{
	PracticeInProgress: "in_progress",
	PracticeCompleted:  "completed",
	PracticeAbandoned:  "abandoned",
}

func (s PracticeSessionStatus) String() string {
	if name, ok := practiceStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("PracticeSessionStatus(%d)", int(s))
}

func ParsePracticeSessionStatus(v string) (PracticeSessionStatus, error) {
	for s, name := range practiceStatusNames {
		if name == v {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown practice session status %q", v)
}

func (s PracticeSessionStatus) MarshalText() ([]byte, error) {
	if _, ok := practiceStatusNames[s]; !ok {
		return nil, fmt.Errorf("invalid practice session status %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *PracticeSessionStatus) UnmarshalText(b []byte) error {
	parsed, err := ParsePracticeSessionStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
