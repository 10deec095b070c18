// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package finstate

import "testing"

func TestTransitionTable(t *testing.T) {
	deposit := KindOf("deposit", false)
	bankWithdraw := KindOf("withdraw", false)
	cryptoWithdraw := KindOf("Withdraw", true)

	cases := []struct {
		from Status
		ev   Event
		k    Kind
		want Status
	}{
		{Pending, Accept, deposit, Success},
		{Pending, Accept, bankWithdraw, Success},
		{Pending, Accept, cryptoWithdraw, Transferring},
		{Pending, Reject, deposit, Fail},
		{Pending, Reject, bankWithdraw, Rejected},
		{Pending, CancelEvent, deposit, Cancel},
		{Transferring, Confirm, cryptoWithdraw, Success},
		{Transferring, Reject, cryptoWithdraw, Fail},
		{Transferring, CancelEvent, cryptoWithdraw, Cancel},
	}
	for _, c := range cases {
		got, err := Next(c.from, c.ev, c.k)
		if err != nil || got != c.want {
			t.Fatalf("%s + %s: got %s, %v want %s", c.from, c.ev, got, err, c.want)
		}
	}
}

func TestTerminalStatesRejectEverything(t *testing.T) {
	for _, s := range []Status{Success, Fail, Cancel, Rejected, Unknown} {
		if len(Actions(s)) != 0 {
			t.Fatalf("%s must have no actions", s)
		}
		if _, err := Next(s, Accept, Kind{}); err == nil {
			t.Fatalf("%s must not accept", s)
		}
	}
	if _, err := Next(Pending, Confirm, Kind{}); err == nil {
		t.Fatalf("pending requests cannot be confirmed")
	}
	if _, err := Next(Transferring, Accept, Kind{}); err == nil {
		t.Fatalf("transferring requests cannot be accepted twice")
	}
}

func TestParse(t *testing.T) {
	cases := map[string]Status{"Pending": Pending, " SUCCESS ": Success, "canceled": Cancel, "Rejected": Rejected, "OnHold": Unknown}
	for in, want := range cases {
		if got := Parse(in); got != want {
			t.Fatalf("Parse(%q)=%s want %s", in, got, want)
		}
	}
	if ev, err := ParseEvent("Confirm"); err != nil || ev != Confirm {
		t.Fatalf("ParseEvent: %v %v", ev, err)
	}
	if _, err := ParseEvent("approve"); err == nil {
		t.Fatalf("expected unknown action error")
	}
	if got := Actions(Transferring); len(got) != 3 || got[0] != Confirm {
		t.Fatalf("unexpected transferring actions %v", got)
	}
}
