package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/coopregistry/coopregistry-api/internal/models"
)

// SocietyFSM wraps a society with its approval state machine. Approval and
// rejection are only reachable from pending; both are terminal.
type SocietyFSM struct {
	society *models.Society
	fsm     *fsm.FSM
}

// NewSocietyFSM creates a new society approval state machine
func NewSocietyFSM(society *models.Society) *SocietyFSM {
	s := &SocietyFSM{
		society: society,
	}

	s.fsm = fsm.NewFSM(
		society.Status,
		fsm.Events{
			// pending → approved
			{Name: "approve", Src: []string{models.SocietyStatusPending}, Dst: models.SocietyStatusApproved},

			// pending → rejected
			{Name: "reject", Src: []string{models.SocietyStatusPending}, Dst: models.SocietyStatusRejected},
		},
		fsm.Callbacks{},
	)

	return s
}

// Approve transitions the society to approved
func (s *SocietyFSM) Approve(ctx context.Context) error {
	if s.society.IsDecided() {
		return fmt.Errorf("society cannot be approved in current state: %s", s.society.Status)
	}

	if err := s.fsm.Event(ctx, "approve"); err != nil {
		return fmt.Errorf("failed to approve society: %w", err)
	}

	s.society.Status = s.fsm.Current()
	return nil
}

// Reject transitions the society to rejected
func (s *SocietyFSM) Reject(ctx context.Context) error {
	if s.society.IsDecided() {
		return fmt.Errorf("society cannot be rejected in current state: %s", s.society.Status)
	}

	if err := s.fsm.Event(ctx, "reject"); err != nil {
		return fmt.Errorf("failed to reject society: %w", err)
	}

	s.society.Status = s.fsm.Current()
	return nil
}

// Current returns the current state
func (s *SocietyFSM) Current() string {
	return s.fsm.Current()
}

// Can checks if a transition is possible
func (s *SocietyFSM) Can(event string) bool {
	return s.fsm.Can(event)
}
