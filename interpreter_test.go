package main

import (
	"testing"
)

func interpreterSnapshot(t *testing.T) (Snapshot, string) {
	t.Helper()
	g := testRoster(t, 6)
	snap := g.snapshot()
	return snap, playerNamed(t, g, "Alice").ID
}

func TestParseInterpreterReply(t *testing.T) {
	snap, actorID := interpreterSnapshot(t)
	bruno := snap.findPlayerByName("Bruno")

	cases := []struct {
		name     string
		reply    string
		wantKind ActionKind
		wantNil  bool
	}{
		{"plain json", `{"kind": "seer_inspect", "target": "Bruno"}`, ActionSeerInspect, false},
		{"fenced json", "```json\n{\"kind\": \"wolf_target\", \"target\": \"Bruno\"}\n```", ActionWolfTarget, false},
		{"bare fence", "```\n{\"kind\": \"witch_kill\", \"target\": \"bruno\"}\n```", ActionWitchKill, false},
		{"pass needs no target", `{"kind": "witch_pass", "target": ""}`, ActionWitchPass, false},
		{"explicit none", `{"kind": "none", "target": ""}`, "", true},
		{"unknown kind", `{"kind": "lynch", "target": "Bruno"}`, "", true},
		{"unknown target", `{"kind": "seer_inspect", "target": "Zorro"}`, "", true},
		{"not json", `the wolves should eat Bruno tonight`, "", true},
	}

	for _, tc := range cases {
		action := parseInterpreterReply(snap, actorID, tc.reply)
		if tc.wantNil {
			if action != nil {
				t.Errorf("%s: got %+v, want no action", tc.name, action)
			}
			continue
		}
		if action == nil {
			t.Fatalf("%s: got no action", tc.name)
		}
		if action.Kind != tc.wantKind {
			t.Errorf("%s: kind = %s, want %s", tc.name, action.Kind, tc.wantKind)
		}
		if action.ActorID != actorID {
			t.Errorf("%s: actor = %s, want %s", tc.name, action.ActorID, actorID)
		}
		if tc.wantKind != ActionWitchPass && action.TargetID != bruno.ID {
			t.Errorf("%s: target = %s, want Bruno's id", tc.name, action.TargetID)
		}
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct{ in, want string }{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tc := range cases {
		if got := stripCodeFence(tc.in); got != tc.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
