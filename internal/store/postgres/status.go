package postgres

import "github.com/flowspace/flowspace/internal/domain"

// The legacy record-storage schema spells the middle status token in camel
// case ("inProgress") while the domain's canonical spelling is hyphenated
// ("in-progress"). The translation lives here, at the adapter boundary, so
// the storage token never leaks into the state machine.

func statusToWire(s domain.TaskStatus) string {
	if s == domain.TaskStatusInProgress {
		return "inProgress"
	}
	return string(s)
}

func statusFromWire(s string) domain.TaskStatus {
	if s == "inProgress" {
		return domain.TaskStatusInProgress
	}
	return domain.TaskStatus(s)
}
