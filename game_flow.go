package main

import "strings"

// evaluateWinner is pure over the alive-role counts and safe to call in any
// phase. The zero-wolf check runs first, so an empty table after admin
// removals still reports a village win.
func evaluateWinner(g *GameSession) Winner {
	wolves := g.aliveWolves()
	if wolves == 0 {
		return WinnerVillage
	}
	if wolves >= g.aliveNonWolves() {
		return WinnerWolves
	}
	return WinnerNone
}

// applyWinCheck runs the evaluator and, if the game is decided, freezes the
// session in its terminal state. Returns true when the game just ended.
func (g *GameSession) applyWinCheck() bool {
	winner := evaluateWinner(g)
	if winner == WinnerNone {
		return false
	}
	g.Winner = winner
	g.Status = StatusEnded
	g.Phase = PhaseEnded
	g.PendingDeaths = nil
	g.WolfVotes = nil
	g.logEvent("game_over", map[string]string{"winner": string(winner)})
	return true
}

// recordWolfVote registers or overwrites a wolf's standing vote. A changed
// vote moves to the back of the slice, so ties resolve toward the target
// whose standing vote was submitted first.
func (g *GameSession) recordWolfVote(wolfID, targetID string) {
	for i, v := range g.WolfVotes {
		if v.WolfID == wolfID {
			g.WolfVotes = append(g.WolfVotes[:i], g.WolfVotes[i+1:]...)
			break
		}
	}
	g.WolfVotes = append(g.WolfVotes, WolfVote{WolfID: wolfID, TargetID: targetID})
}

// tallyWolfVotes returns the pack's chosen target once every living wolf has
// a standing vote. The plurality wins; on a tie the earliest standing vote
// among the tied targets decides.
func (g *GameSession) tallyWolfVotes() (targetID string, decided bool) {
	living := g.aliveCount(RoleWolf)
	if living == 0 || len(g.WolfVotes) < living {
		return "", false
	}
	counts := make(map[string]int)
	for _, v := range g.WolfVotes {
		counts[v.TargetID]++
	}
	best := 0
	for _, n := range counts {
		if n > best {
			best = n
		}
	}
	for _, v := range g.WolfVotes {
		if counts[v.TargetID] == best {
			return v.TargetID, true
		}
	}
	return "", false
}

// resolveWolfVotes checks whether the pack has settled on a victim and, if
// so, buffers the kill and hands the night to the witch.
func (g *GameSession) resolveWolfVotes() {
	targetID, decided := g.tallyWolfVotes()
	if !decided {
		return
	}
	g.WolfVotes = nil
	g.PendingDeaths = append(g.PendingDeaths, PendingDeath{PlayerID: targetID, Cause: CauseWolfAttack})
	payload := map[string]string{"target_id": targetID}
	if p := g.findPlayer(targetID); p != nil {
		payload["target"] = p.Name
	}
	g.logEvent("wolves_kill", payload)
	g.advancePhase()
}

// resolveDawn applies every uncancelled pending death in one step, clears
// the night buffers, and runs the win check before opening the day.
func (g *GameSession) resolveDawn() {
	var died []string
	for _, pd := range g.PendingDeaths {
		p := g.findPlayer(pd.PlayerID)
		if p == nil || !p.Alive {
			continue
		}
		p.Alive = false
		g.Deaths = append(g.Deaths, DeathRecord{
			PlayerID:   p.ID,
			Cause:      pd.Cause,
			NightIndex: g.NightIndex,
		})
		died = append(died, p.Name)
	}
	g.PendingDeaths = nil
	g.WolfVotes = nil

	payload := map[string]string{}
	if len(died) > 0 {
		payload["died"] = strings.Join(died, ", ")
	} else {
		payload["died"] = "nobody"
	}
	g.logEvent("dawn", payload)

	if g.applyWinCheck() {
		return
	}
	g.Phase = PhaseDay
}
