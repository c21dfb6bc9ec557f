package main

import (
	"errors"
	"testing"
)

func TestAdminRemoveLastWolfEndsGame(t *testing.T) {
	g := testRoster(t, 6)
	wolf := playerNamed(t, g, "Bruno")

	if err := adminRemovePlayer(g, wolf.ID); err != nil {
		t.Fatalf("adminRemovePlayer: %v", err)
	}

	if wolf.Alive {
		t.Errorf("removed player still alive")
	}
	if len(g.Deaths) != 1 || g.Deaths[0].Cause != CauseAdminRemoval {
		t.Errorf("death ledger = %+v, want one admin_removal record", g.Deaths)
	}
	if g.Status != StatusEnded || g.Winner != WinnerVillage {
		t.Fatalf("state = %s winner = %s, want ended/village after the last wolf leaves", g.Status, g.Winner)
	}
}

func TestAdminRemoveVillagerMidNight(t *testing.T) {
	g := testRoster(t, 6)
	elena := playerNamed(t, g, "Elena")

	if err := adminRemovePlayer(g, elena.ID); err != nil {
		t.Fatalf("adminRemovePlayer: %v", err)
	}

	if g.Status != StatusInProgress {
		t.Fatalf("game ended although wolves were still outnumbered")
	}
	if g.Phase != PhaseNightSeer {
		t.Errorf("phase = %s, want night_seer to continue", g.Phase)
	}
}

func TestAdminRemoveFromLobbyShrinksRoster(t *testing.T) {
	g := newSession("ABC123")
	for _, name := range []string{"Alice", "Bruno", "Carla"} {
		g.Players = append(g.Players, &Player{ID: name, Name: name, Alive: true})
	}

	if err := adminRemovePlayer(g, "Bruno"); err != nil {
		t.Fatalf("adminRemovePlayer: %v", err)
	}
	if len(g.Players) != 2 {
		t.Fatalf("roster size = %d, want 2", len(g.Players))
	}
	if g.findPlayer("Bruno") != nil {
		t.Errorf("removed lobby player still on roster")
	}
	if len(g.Deaths) != 0 {
		t.Errorf("lobby removal must not create a death record")
	}
}

func TestAdminRemoveSeerDuringSeerPhase(t *testing.T) {
	g := testRoster(t, 6)
	seer := playerNamed(t, g, "Alice")

	if err := adminRemovePlayer(g, seer.ID); err != nil {
		t.Fatalf("adminRemovePlayer: %v", err)
	}
	if g.Phase != PhaseNightWolves {
		t.Fatalf("phase = %s, want night_wolves once the seer phase has no actor", g.Phase)
	}
}

func TestAdminRemoveUnknownOrDeadPlayer(t *testing.T) {
	g := testRoster(t, 6)
	wantErr(t, adminRemovePlayer(g, "ghost"), ErrUnknownPlayer)

	elena := playerNamed(t, g, "Elena")
	elena.Alive = false
	wantErr(t, adminRemovePlayer(g, elena.ID), ErrDeadPlayerTargeted)
}

func TestAdminRemoveRejectedOnFinishedGame(t *testing.T) {
	g := testRoster(t, 6)
	// Wolves reach parity: only Bruno and Elena are left standing.
	for _, name := range []string{"Alice", "Carla", "David", "Frank"} {
		playerNamed(t, g, name).Alive = false
	}
	g.Phase = PhaseDay
	if !g.applyWinCheck() {
		t.Fatalf("setup: expected a wolf win at parity")
	}

	wolf := playerNamed(t, g, "Bruno")
	wantErr(t, adminRemovePlayer(g, wolf.ID), ErrInvalidPhaseAction)

	if g.Status != StatusEnded || g.Winner != WinnerWolves {
		t.Fatalf("state = %s winner = %s, recorded result must not change", g.Status, g.Winner)
	}
	if !wolf.Alive {
		t.Errorf("removal on a finished game killed a player")
	}
	if len(g.Deaths) != 0 {
		t.Errorf("removal on a finished game appended death records: %+v", g.Deaths)
	}
}

func TestForcePhaseClearsStaleNightBuffers(t *testing.T) {
	g := testRoster(t, 6)
	playNightToWitch(t, g, "Bruno", "David")
	if len(g.PendingDeaths) != 1 {
		t.Fatalf("setup: want a pending death going into the witch phase")
	}

	if err := adminForcePhase(g, PhaseDay); err != nil {
		t.Fatalf("adminForcePhase: %v", err)
	}

	if g.Phase != PhaseDay {
		t.Errorf("phase = %s, want day", g.Phase)
	}
	if len(g.PendingDeaths) != 0 || len(g.WolfVotes) != 0 {
		t.Errorf("stale night buffers survived the jump")
	}
	if !playerNamed(t, g, "David").Alive {
		t.Errorf("abandoned pending death was applied")
	}
	if err := g.checkInvariants(); err != nil {
		t.Errorf("invariants broken after force: %v", err)
	}
}

func TestForcePhaseRejectsTerminalTargets(t *testing.T) {
	g := testRoster(t, 6)
	for _, phase := range []Phase{PhaseDawn, PhaseEnded, PhaseLobby, Phase("bogus")} {
		if err := adminForcePhase(g, phase); !errors.Is(err, ErrInvalidPhaseAction) {
			t.Errorf("force to %q: got %v, want ErrInvalidPhaseAction", phase, err)
		}
	}

	g.Status = StatusLobby
	g.Phase = PhaseLobby
	if err := adminForcePhase(g, PhaseDay); !errors.Is(err, ErrInvalidPhaseAction) {
		t.Errorf("force on a lobby: got %v, want ErrInvalidPhaseAction", err)
	}
}

func TestAdminResetRestoresFreshLobby(t *testing.T) {
	g := testRoster(t, 6)
	playNightToWitch(t, g, "Bruno", "David")
	witch := playerNamed(t, g, "Carla")
	mustApply(t, g, Action{Kind: ActionWitchPass, ActorID: witch.ID})
	g.Corrupted = true

	adminReset(g)

	if g.Status != StatusLobby || g.Phase != PhaseLobby || g.Winner != WinnerNone {
		t.Fatalf("state = %s/%s winner=%s, want a fresh lobby", g.Status, g.Phase, g.Winner)
	}
	if g.Corrupted {
		t.Errorf("corruption flag survived the reset")
	}
	if g.Potions.HealUsed || g.Potions.KillUsed {
		t.Errorf("potions not restored: %+v", g.Potions)
	}
	if len(g.Deaths) != 0 || len(g.PendingDeaths) != 0 || len(g.WolfVotes) != 0 {
		t.Errorf("ledgers not cleared")
	}
	for _, p := range g.Players {
		if !p.Alive || p.Role != "" {
			t.Errorf("player %s alive=%v role=%q after reset", p.Name, p.Alive, p.Role)
		}
	}
	if ev := g.lastEvent(); ev.Type != "admin_reset" {
		t.Errorf("last event = %s, want admin_reset", ev.Type)
	}
}

func TestCorruptedSessionFreezesUntilReset(t *testing.T) {
	g := testRoster(t, 6)
	g.Corrupted = true
	seer := playerNamed(t, g, "Alice")

	_, err := applyAction(g, Action{Kind: ActionSeerInspect, ActorID: seer.ID, TargetID: playerNamed(t, g, "Bruno").ID})
	wantErr(t, err, ErrSessionCorrupted)
	wantErr(t, adminForcePhase(g, PhaseDay), ErrSessionCorrupted)
	wantErr(t, adminRemovePlayer(g, seer.ID), ErrSessionCorrupted)

	adminReset(g)
	if g.Corrupted {
		t.Fatalf("reset must clear the corruption flag")
	}
}
