package main

// ActionKind is a closed set. The interpreter may only ever produce one of
// these five values; anything else is rejected before it touches state.
type ActionKind string

const (
	ActionSeerInspect ActionKind = "seer_inspect"
	ActionWolfTarget  ActionKind = "wolf_target"
	ActionWitchHeal   ActionKind = "witch_heal"
	ActionWitchKill   ActionKind = "witch_kill"
	ActionWitchPass   ActionKind = "witch_pass"
)

// Action is one structured player move. WitchPass takes no target.
type Action struct {
	Kind     ActionKind `json:"kind"`
	ActorID  string     `json:"actor_id"`
	TargetID string     `json:"target_id,omitempty"`
}

// ApplyResult carries the post-mutation snapshot plus the one piece of
// private information an action can produce: the role the seer saw. The
// revealed role goes to the acting player only, never into the snapshot.
type ApplyResult struct {
	Snapshot Snapshot `json:"snapshot"`
	Revealed Role     `json:"revealed,omitempty"`
}

// applyAction validates and applies one action to the session. Every
// validation failure leaves the session untouched. The caller holds the
// session lock and is responsible for persistence and broadcasting.
func applyAction(g *GameSession, action Action) (ApplyResult, error) {
	if g.Corrupted {
		return ApplyResult{}, ErrSessionCorrupted
	}

	actor := g.findPlayer(action.ActorID)
	if actor == nil {
		return ApplyResult{}, ErrUnknownPlayer
	}
	if !actor.Alive {
		return ApplyResult{}, ErrDeadPlayerTargeted
	}

	var revealed Role
	switch action.Kind {
	case ActionSeerInspect:
		if actor.Role != RoleSeer {
			return ApplyResult{}, ErrWrongRoleForAction
		}
		if g.Phase != PhaseNightSeer {
			return ApplyResult{}, ErrInvalidPhaseAction
		}
		target, err := g.livingTarget(action.TargetID)
		if err != nil {
			return ApplyResult{}, err
		}
		revealed = target.Role
		g.logEvent("seer_peek", map[string]string{"seer": actor.Name, "target": target.Name})
		g.advancePhase()

	case ActionWolfTarget:
		if actor.Role != RoleWolf {
			return ApplyResult{}, ErrWrongRoleForAction
		}
		if g.Phase != PhaseNightWolves {
			return ApplyResult{}, ErrInvalidPhaseAction
		}
		target, err := g.livingTarget(action.TargetID)
		if err != nil {
			return ApplyResult{}, err
		}
		g.recordWolfVote(actor.ID, target.ID)
		g.logEvent("wolves_vote", map[string]string{"wolf": actor.Name, "target": target.Name})
		g.resolveWolfVotes()

	case ActionWitchHeal:
		if actor.Role != RoleWitch {
			return ApplyResult{}, ErrWrongRoleForAction
		}
		if g.Phase != PhaseNightWitch {
			return ApplyResult{}, ErrInvalidPhaseAction
		}
		if g.Potions.HealUsed {
			return ApplyResult{}, ErrPotionAlreadyUsed
		}
		target, err := g.livingTarget(action.TargetID)
		if err != nil {
			return ApplyResult{}, err
		}
		if !g.isPendingDeath(target.ID) {
			return ApplyResult{}, ErrNoRescueTarget
		}
		g.cancelPendingDeath(target.ID)
		target.Protected = true
		g.Potions.HealUsed = true
		g.logEvent("witch_heal", map[string]string{"target": target.Name})
		g.advancePhase()

	case ActionWitchKill:
		if actor.Role != RoleWitch {
			return ApplyResult{}, ErrWrongRoleForAction
		}
		if g.Phase != PhaseNightWitch {
			return ApplyResult{}, ErrInvalidPhaseAction
		}
		if g.Potions.KillUsed {
			return ApplyResult{}, ErrPotionAlreadyUsed
		}
		target, err := g.livingTarget(action.TargetID)
		if err != nil {
			return ApplyResult{}, err
		}
		if g.isPendingDeath(target.ID) {
			return ApplyResult{}, ErrTargetAlreadyDying
		}
		g.PendingDeaths = append(g.PendingDeaths, PendingDeath{PlayerID: target.ID, Cause: CauseWitchPoison})
		g.Potions.KillUsed = true
		g.logEvent("witch_poison", map[string]string{"target": target.Name})
		g.advancePhase()

	case ActionWitchPass:
		if actor.Role != RoleWitch {
			return ApplyResult{}, ErrWrongRoleForAction
		}
		if g.Phase != PhaseNightWitch {
			return ApplyResult{}, ErrInvalidPhaseAction
		}
		g.logEvent("witch_pass", nil)
		g.advancePhase()

	default:
		return ApplyResult{}, ErrUnknownAction
	}

	return ApplyResult{Snapshot: g.snapshot(), Revealed: revealed}, nil
}

// livingTarget resolves a target id, rejecting unknown and dead players.
func (g *GameSession) livingTarget(id string) (*Player, error) {
	target := g.findPlayer(id)
	if target == nil {
		return nil, ErrUnknownPlayer
	}
	if !target.Alive {
		return nil, ErrDeadPlayerTargeted
	}
	return target, nil
}

func (g *GameSession) cancelPendingDeath(playerID string) {
	for i, d := range g.PendingDeaths {
		if d.PlayerID == playerID {
			g.PendingDeaths = append(g.PendingDeaths[:i], g.PendingDeaths[i+1:]...)
			return
		}
	}
}
