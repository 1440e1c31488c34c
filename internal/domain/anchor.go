package domain

import "fmt"

type AnchorKind string

const (
	AnchorFinalDeadline AnchorKind = "final_deadline"
	AnchorTrigger       AnchorKind = "trigger"
)

// Anchor identifies the reference point an offset is measured from: the
// project's final deadline, or a trigger blueprint in the same template.
// An offset never anchors to another offset; the two forms here are the
// only legal ones, so trigger chains are flattened at authoring time.
type Anchor struct {
	Kind               AnchorKind
	TriggerBlueprintID string
}

// FinalDeadlineAnchor returns the anchor for the project's final deadline.
func FinalDeadlineAnchor() Anchor {
	return Anchor{Kind: AnchorFinalDeadline}
}

// TriggerAnchor returns an anchor referencing a trigger blueprint.
func TriggerAnchor(blueprintID string) Anchor {
	return Anchor{Kind: AnchorTrigger, TriggerBlueprintID: blueprintID}
}

func (a Anchor) String() string {
	if a.Kind == AnchorTrigger {
		return fmt.Sprintf("trigger:%s", a.TriggerBlueprintID)
	}
	return string(AnchorFinalDeadline)
}

type OffsetUnit string

const (
	UnitDay   OffsetUnit = "day"
	UnitWeek  OffsetUnit = "week"
	UnitMonth OffsetUnit = "month"
)

// ValidOffsetUnits is the canonical set of accepted offset unit strings.
var ValidOffsetUnits = map[string]bool{
	"day": true, "week": true, "month": true,
}

// Offset is a signed time magnitude relative to an anchor. Resolving it
// against a concrete anchor date yields a concrete date.
type Offset struct {
	Anchor Anchor
	Amount int
	Unit   OffsetUnit
}

func (o Offset) String() string {
	return fmt.Sprintf("%s %+d %s", o.Anchor, o.Amount, o.Unit)
}
