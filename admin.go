package main

// forceablePhases are the phases an admin may jump to directly. Dawn and
// Ended are excluded: Dawn is a transient computation and Ended only ever
// comes from the win evaluator.
var forceablePhases = map[Phase]bool{
	PhaseNightSeer:   true,
	PhaseNightWolves: true,
	PhaseNightWitch:  true,
	PhaseDay:         true,
}

// adminForcePhase jumps the session to the given phase, clearing any stale
// night buffers so the invariants hold at the destination. This is how a
// game master unblocks a stuck table, e.g. a night where the seer never
// submits an inspection.
func adminForcePhase(g *GameSession, phase Phase) error {
	if g.Corrupted {
		return ErrSessionCorrupted
	}
	if g.Status != StatusInProgress || !forceablePhases[phase] {
		return ErrInvalidPhaseAction
	}
	g.PendingDeaths = nil
	g.WolfVotes = nil
	g.Phase = phase
	g.logEvent("admin_force_phase", map[string]string{"phase": string(phase)})
	g.skipVacantPhases()
	if g.Phase == PhaseDawn {
		g.resolveDawn()
	}
	return nil
}

// adminRemovePlayer takes a player out of the game in any phase before the
// end. In the lobby the player simply leaves the roster; once roles are dealt
// the removal is a death with its own cause, followed by a win re-check. A
// finished game is immutable except through adminReset, so its recorded
// winner can never be rewritten.
func adminRemovePlayer(g *GameSession, playerID string) error {
	if g.Corrupted {
		return ErrSessionCorrupted
	}
	if g.Status == StatusEnded {
		return ErrInvalidPhaseAction
	}
	p := g.findPlayer(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}

	if g.Status == StatusLobby {
		for i, other := range g.Players {
			if other.ID == playerID {
				g.Players = append(g.Players[:i], g.Players[i+1:]...)
				break
			}
		}
		g.logEvent("admin_remove_player", map[string]string{"player": p.Name})
		return nil
	}

	if !p.Alive {
		return ErrDeadPlayerTargeted
	}

	p.Alive = false
	g.Deaths = append(g.Deaths, DeathRecord{
		PlayerID:   p.ID,
		Cause:      CauseAdminRemoval,
		NightIndex: g.NightIndex,
	})
	g.cancelPendingDeath(p.ID)
	for i := len(g.WolfVotes) - 1; i >= 0; i-- {
		v := g.WolfVotes[i]
		if v.WolfID == p.ID || v.TargetID == p.ID {
			g.WolfVotes = append(g.WolfVotes[:i], g.WolfVotes[i+1:]...)
		}
	}
	g.logEvent("admin_remove_player", map[string]string{"player": p.Name})

	if g.applyWinCheck() {
		return nil
	}

	// The removal may have emptied the current night phase, or left the
	// remaining wolves with a settled vote.
	if g.Phase == PhaseNightWolves {
		g.resolveWolfVotes()
	}
	g.skipVacantPhases()
	if g.Phase == PhaseDawn {
		g.resolveDawn()
	}
	return nil
}

// adminReset returns the session to a fresh lobby with the same roster.
// Roles, deaths, potions, and any corruption flag are wiped; the event
// history stays, with the reset on record.
func adminReset(g *GameSession) {
	for _, p := range g.Players {
		p.Role = ""
		p.Alive = true
		p.Protected = false
	}
	g.Status = StatusLobby
	g.Phase = PhaseLobby
	g.Winner = WinnerNone
	g.NightIndex = 0
	g.Potions = PotionState{}
	g.PendingDeaths = nil
	g.WolfVotes = nil
	g.Deaths = nil
	g.Corrupted = false
	g.logEvent("admin_reset", nil)
}
