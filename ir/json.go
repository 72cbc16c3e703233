package ir

import "encoding/json"

// jsonField mirrors Field but serializes pointer cross-references by
// field name rather than by value, and stamps the dataType
// discriminator.
type jsonField struct {
	DataType        string      `json:"dataType"`
	Name            string      `json:"name"`
	Type            string      `json:"type"`
	Comment         string      `json:"comment,omitempty"`
	StringMaxLength *int        `json:"stringMaxLength,omitempty"`
	LengthGivenBy   *string     `json:"lengthGivenBy,omitempty"`
	IsLengthOf      *string     `json:"isLengthOf,omitempty"`
	OnlyIf          string      `json:"onlyIf,omitempty"`
	OnlyIfBool      *string     `json:"onlyIfBool,omitempty"`
	IsConditionOf   *string     `json:"isConditionOf,omitempty"`
	Enum            *Enum       `json:"enum,omitempty"`
	Switch          *Switch     `json:"switch,omitempty"`
	Compound        *Compound   `json:"compound,omitempty"`
}

func namePtr(f *Field) *string {
	if f == nil {
		return nil
	}
	n := f.Name
	return &n
}

// MarshalJSON stamps Field's "dataType" discriminator and serializes
// its pointer cross-references by field name.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonField{
		DataType:        "Field",
		Name:            f.Name,
		Type:            f.Type,
		Comment:         f.Comment,
		StringMaxLength: f.StringMaxLength,
		LengthGivenBy:   namePtr(f.LengthGivenBy),
		IsLengthOf:      namePtr(f.IsLengthOf),
		OnlyIf:          f.OnlyIf,
		OnlyIfBool:      namePtr(f.OnlyIfBool),
		IsConditionOf:   namePtr(f.IsConditionOf),
		Enum:            f.Enum,
		Switch:          f.Switch,
		Compound:        f.Compound,
	})
}

type jsonEnumEntry struct {
	DataType string `json:"dataType"`
	Value    string `json:"value"`
	Name     string `json:"name"`
	Comment  string `json:"comment,omitempty"`
}

func (e EnumEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonEnumEntry{DataType: "EnumEntry", Value: e.Value, Name: e.Name, Comment: e.Comment})
}

type jsonEnum struct {
	DataType     string      `json:"dataType"`
	Name         string      `json:"name"`
	Discriminant *string     `json:"discriminant,omitempty"`
	Entries      []EnumEntry `json:"entries"`
}

func (e *Enum) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonEnum{DataType: "Enum", Name: e.Name, Discriminant: namePtr(e.Discriminant), Entries: e.Entries})
}

type jsonSwitchEntry struct {
	DataType string   `json:"dataType"`
	Value    string   `json:"value"`
	Compound Compound `json:"compound"`
}

type jsonSwitch struct {
	DataType     string            `json:"dataType"`
	Name         string            `json:"name"`
	Discriminant *string           `json:"discriminant,omitempty"`
	IsOutward    bool              `json:"isOutward"`
	Cases        []jsonSwitchEntry `json:"cases"`
}

func (s *Switch) MarshalJSON() ([]byte, error) {
	cases := make([]jsonSwitchEntry, len(s.Cases))
	for i, c := range s.Cases {
		cases[i] = jsonSwitchEntry{DataType: "SwitchEntry", Value: c.Value, Compound: c.Compound}
	}
	return json.Marshal(jsonSwitch{
		DataType:     "Switch",
		Name:         s.Name,
		Discriminant: namePtr(s.Discriminant),
		IsOutward:    s.IsOutward,
		Cases:        cases,
	})
}

type jsonCompound struct {
	DataType              string `json:"dataType"`
	Name                  string `json:"name"`
	ContainsOutwardSwitch bool   `json:"containsOutwardSwitch"`
	Entries               []any  `json:"entries"`
}

func (c Compound) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonCompound{
		DataType:              "Compound",
		Name:                  c.Name,
		ContainsOutwardSwitch: c.ContainsOutwardSwitch,
		Entries:               c.Entries,
	})
}

type jsonPacketInfos struct {
	DataType string   `json:"dataType"`
	PacketID int      `json:"packetId"`
	Compound Compound `json:"compound"`
}

func (p *PacketIR) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonPacketInfos{DataType: "PacketInfos", PacketID: p.PacketID, Compound: p.Compound})
}

type jsonSubProtocol struct {
	DataType    string      `json:"dataType"`
	Name        string      `json:"name"`
	Clientbound []*PacketIR `json:"clientbound"`
	Serverbound []*PacketIR `json:"serverbound"`
}

func (s *SubProtocol) MarshalJSON() ([]byte, error) {
	cb, sb := s.Clientbound, s.Serverbound
	if cb == nil {
		cb = []*PacketIR{}
	}
	if sb == nil {
		sb = []*PacketIR{}
	}
	return json.Marshal(jsonSubProtocol{DataType: "SubProtocol", Name: s.Name, Clientbound: cb, Serverbound: sb})
}

type jsonProtocol struct {
	DataType       string       `json:"dataType"`
	GameVersion    string       `json:"gameVersion"`
	ProtocolNumber int          `json:"protocolNumber"`
	Handshake      *SubProtocol `json:"handshake"`
	Status         *SubProtocol `json:"status"`
	Login          *SubProtocol `json:"login"`
	Play           *SubProtocol `json:"play"`
}

func (p *Protocol) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonProtocol{
		DataType:       "Protocol",
		GameVersion:    p.GameVersion,
		ProtocolNumber: p.ProtocolNumber,
		Handshake:      p.Handshake,
		Status:         p.Status,
		Login:          p.Login,
		Play:           p.Play,
	})
}
