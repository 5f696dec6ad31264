package employersrv

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/Abraxas-365/hireboard/pkg/formx"
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/pkg/listx"
	"github.com/Abraxas-365/hireboard/recruitment/employer"
)

// Team holds the company team. The backend returns it in one piece.
type Team struct {
	gateway   employer.Gateway
	confirmer listx.Confirmer

	mu      sync.RWMutex
	members []employer.TeamMember
	err     error
}

// NewTeam creates the team controller
func NewTeam(gateway employer.Gateway, confirmer listx.Confirmer) *Team {
	return &Team{gateway: gateway, confirmer: confirmer}
}

// Load fetches the team. The last loaded members are kept on failure.
func (t *Team) Load(ctx context.Context) error {
	members, err := t.gateway.ListTeam(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.err = err
	if err != nil {
		return err
	}
	t.members = members
	return nil
}

// Members returns a copy of the loaded team
func (t *Team) Members() []employer.TeamMember {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.members)
}

// Err returns the error of the last load
func (t *Team) Err() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.err
}

func (t *Team) find(id kernel.TeamMemberID) (employer.TeamMember, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	i := slices.IndexFunc(t.members, func(m employer.TeamMember) bool { return m.ID == id })
	if i < 0 {
		return employer.TeamMember{}, false
	}
	return t.members[i], true
}

// UpdateRole changes a member's role once the backend accepted
func (t *Team) UpdateRole(ctx context.Context, id kernel.TeamMemberID, role employer.TeamRole) error {
	req := employer.UpdateRoleRequest{Role: role}
	if err := formx.Check(req); err != nil {
		return err
	}
	m, ok := t.find(id)
	if !ok {
		return employer.ErrMemberNotFound().WithDetail("member_id", id.String())
	}
	if m.IsOwner() {
		return employer.ErrInsufficientPermissions().WithDetail("reason", "owner role cannot change")
	}

	updated, err := t.gateway.UpdateTeamMemberRole(ctx, id, req)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if i := slices.IndexFunc(t.members, func(m employer.TeamMember) bool { return m.ID == id }); i >= 0 {
		t.members = slices.Clone(t.members)
		t.members[i] = *updated
	}
	return nil
}

// Remove asks for confirmation, then removes the member
func (t *Team) Remove(ctx context.Context, id kernel.TeamMemberID) error {
	m, ok := t.find(id)
	if !ok {
		return employer.ErrMemberNotFound().WithDetail("member_id", id.String())
	}
	if !m.CanBeRemoved() {
		return employer.ErrCannotRemoveOwner()
	}

	prompt := fmt.Sprintf("Remove %s from the team?", m.DisplayName())
	if err := listx.RequireConfirmation(ctx, t.confirmer, prompt); err != nil {
		return err
	}
	if err := t.gateway.RemoveTeamMember(ctx, id); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.members = slices.DeleteFunc(slices.Clone(t.members), func(m employer.TeamMember) bool { return m.ID == id })
	return nil
}

// NewInviteForm returns the invitation form. The team is reloaded after a
// successful invite.
func (t *Team) NewInviteForm() *formx.Form[employer.InviteMemberRequest] {
	save := func(ctx context.Context, req employer.InviteMemberRequest) error {
		_, err := t.gateway.InviteTeamMember(ctx, req)
		return err
	}
	return formx.New(employer.InviteMemberRequest{Role: employer.TeamRoleRecruiter}, save,
		formx.WithFallback[employer.InviteMemberRequest]("Could not send the invitation"),
		formx.OnSave(func(ctx context.Context, _ employer.InviteMemberRequest) {
			_ = t.Load(ctx)
		}),
	)
}
