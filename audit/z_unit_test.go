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

package audit

import (
	"context"
	"errors"
	"testing"
	"time"
)

type failing struct{}

func (failing) Record(context.Context, Entry) error { return errors.New("disk full") }

func TestMultiWritesEverywhere(t *testing.T) {
	a, b := &Memory{}, &Memory{}
	err := Multi{a, failing{}, b, Nop{}}.Record(context.Background(), Entry{Action: "financial.accept", Target: "financial:42"})
	if err == nil {
		t.Fatalf("expected the failing journal error")
	}
	if len(a.Entries()) != 1 || len(b.Entries()) != 1 {
		t.Fatalf("every journal must receive the entry")
	}
}

func TestRowMapping(t *testing.T) {
	at := time.Date(2024, 3, 15, 10, 0, 0, 0, time.FixedZone("UTC+3", 3*3600))
	e := Entry{At: at, Operator: "anna", Action: "bonus.resolve", Target: "bonus:9", Key: "k1", Message: "OK"}
	r := toRow(e)
	if r.CreatedAt.Location() != time.UTC || !r.CreatedAt.Equal(at) {
		t.Fatalf("rows must be stored in UTC: %v", r.CreatedAt)
	}
	back := fromRow(r)
	if back.Action != e.Action || back.Key != e.Key || !back.At.Equal(at) {
		t.Fatalf("unexpected round trip: %+v", back)
	}
	if toRow(Entry{}).CreatedAt.IsZero() {
		t.Fatalf("missing timestamps must default to now")
	}
}
