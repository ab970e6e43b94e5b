// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tracker

import (
	"slices"

	"github.com/luxfi/ids"

	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/core"
)

func (t *Tracker) Roles() (Roles, error) {
	roles, ok, err := t.roles.Get(singletonKey)
	if err != nil || !ok {
		return Roles{}, err
	}
	return *roles, nil
}

func (t *Tracker) Project(projectID uint64) (Project, bool, error) {
	project, ok, err := t.projects.Get(core.ProjectKey(projectID))
	if err != nil || !ok {
		return Project{}, false, err
	}
	return *project, true, nil
}

func (t *Tracker) Milestone(key core.MilestoneKey) (Milestone, bool, error) {
	milestone, ok, err := t.milestones.Get(key.Bytes())
	if err != nil || !ok {
		return Milestone{}, false, err
	}
	return *milestone, true, nil
}

// ProjectOracles returns the oracle roster recorded at initialization.
func (t *Tracker) ProjectOracles(projectID uint64) ([]ids.ShortID, error) {
	r, ok, err := t.rosters.Get(core.ProjectKey(projectID))
	if err != nil || !ok {
		return nil, err
	}
	return slices.Clone(r.Oracles), nil
}

// MilestoneEntry pairs a milestone with its key.
type MilestoneEntry struct {
	Key       core.MilestoneKey `json:"key"`
	Milestone Milestone         `json:"milestone"`
}

// Milestones lists a project's milestones ordered by milestone id.
func (t *Tracker) Milestones(projectID uint64) ([]MilestoneEntry, error) {
	entries := []MilestoneEntry{}
	err := t.milestones.Iterate(nil, core.ProjectKey(projectID), func(b []byte, m *Milestone) (bool, error) {
		key, err := core.ParseMilestoneKey(b)
		if err != nil {
			return false, err
		}
		entries = append(entries, MilestoneEntry{Key: key, Milestone: *m})
		return true, nil
	})
	return entries, err
}

// Certified reports whether the milestone completed the workflow.
func (t *Tracker) Certified(key core.MilestoneKey) (bool, error) {
	milestone, ok, err := t.milestones.Get(key.Bytes())
	if err != nil || !ok {
		return false, err
	}
	return milestone.Status == Approved, nil
}

// Pending lists milestones waiting in the given stage across all projects,
// ordered by key and starting after the optional cursor.
func (t *Tracker) Pending(status Status, after *core.MilestoneKey, limit int) ([]core.MilestoneKey, error) {
	if err := t.loadQueue(); err != nil {
		return nil, err
	}
	return t.pending.list(status, after, limit), nil
}

func (t *Tracker) loadQueue() error {
	if t.pending.loaded {
		return nil
	}
	t.pending.items.Clear(false)
	err := t.milestones.Iterate(nil, nil, func(b []byte, m *Milestone) (bool, error) {
		key, err := core.ParseMilestoneKey(b)
		if err != nil {
			return false, err
		}
		if m.Status != Approved {
			t.pending.items.ReplaceOrInsert(queued{status: m.Status, key: key})
		}
		return true, nil
	})
	if err != nil {
		return err
	}
	t.pending.loaded = true
	return nil
}
