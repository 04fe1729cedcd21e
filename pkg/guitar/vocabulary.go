package guitar

import "fmt"

// The vocabulary below is a closed set. Every value carries exactly one
// descriptive sentence in its characteristic table; Describe fails only for
// values outside the set, which is a programming error rather than a runtime
// condition.

type BodyWood string

const (
	BodyWoodAlder    BodyWood = "alder"
	BodyWoodSwampAsh BodyWood = "swamp_ash"
	BodyWoodMahogany BodyWood = "mahogany"
	BodyWoodMaple    BodyWood = "maple"
	BodyWoodBasswood BodyWood = "basswood"
)

type NeckProfile string

const (
	NeckProfileModernC    NeckProfile = "modern_c"
	NeckProfileVintage50s NeckProfile = "vintage_50s_c"
	NeckProfileSlim60s    NeckProfile = "slim_taper_60s"
	NeckProfileChunkyU    NeckProfile = "chunky_u"
	NeckProfileCompoundD  NeckProfile = "compound_d"
)

type FretboardMaterial string

const (
	FretboardRosewood FretboardMaterial = "rosewood"
	FretboardMaple    FretboardMaterial = "maple"
	FretboardEbony    FretboardMaterial = "ebony"
	FretboardPauFerro FretboardMaterial = "pau_ferro"
)

type BridgeSystem string

const (
	BridgeHardtail        BridgeSystem = "hardtail"
	BridgeTuneOMatic      BridgeSystem = "tune_o_matic"
	BridgeVintageTremolo  BridgeSystem = "vintage_tremolo"
	BridgeFloydRose       BridgeSystem = "floyd_rose"
	BridgeTwoPointTremolo BridgeSystem = "two_point_tremolo"
)

type PickupConfig string

const (
	PickupsSSS PickupConfig = "sss"
	PickupsHSS PickupConfig = "hss"
	PickupsHH  PickupConfig = "hh"
	PickupsP90 PickupConfig = "p90"
	PickupsHSH PickupConfig = "hsh"
)

var bodyWoodCharacteristics = map[BodyWood]string{
	BodyWoodAlder:    "Alder is a balanced, lightweight wood with even lows, mids and highs and a slightly scooped midrange.",
	BodyWoodSwampAsh: "Swamp ash is bright and lightweight, with airy highs, firm lows and a pronounced grain figure.",
	BodyWoodMahogany: "Mahogany is warm and dense, emphasizing low-mid growl and long, singing sustain.",
	BodyWoodMaple:    "Maple is hard and reflective, giving sharp attack, strong note definition and a fast percussive response.",
	BodyWoodBasswood: "Basswood is soft and very light, with a focused midrange that sits well under high-gain pickups.",
}

var neckProfileCharacteristics = map[NeckProfile]string{
	NeckProfileModernC:    "The modern C is a shallow all-purpose oval that suits most hand sizes and playing styles.",
	NeckProfileVintage50s: "The vintage 50s C is a deep rounded profile with the full-handed feel of the early custom era.",
	NeckProfileSlim60s:    "The 60s slim taper is a fast, thin profile favored for quick position shifts and low action.",
	NeckProfileChunkyU:    "The chunky U is a broad-shouldered profile that anchors the thumb for heavy rhythm work.",
	NeckProfileCompoundD:  "The compound D flattens progressively toward the upper frets for comfortable lead access.",
}

var fretboardCharacteristics = map[FretboardMaterial]string{
	FretboardRosewood: "Rosewood is a warm, oily board that rounds the top end and smooths pick attack.",
	FretboardMaple:    "A maple board adds snap and brightness, tightening note definition on every string.",
	FretboardEbony:    "Ebony is glassy and fast, with an immediate, piano-like attack and crisp articulation.",
	FretboardPauFerro: "Pau ferro sits between rosewood and ebony, slightly brighter than rosewood with a smooth feel.",
}

var bridgeCharacteristics = map[BridgeSystem]string{
	BridgeHardtail:        "A fixed hardtail bridge maximizes tuning stability and transfers string energy straight into the body.",
	BridgeTuneOMatic:      "The tune-o-matic with stopbar adds mass and sustain in the classic set-neck tradition.",
	BridgeVintageTremolo:  "The vintage six-screw tremolo gives subtle shimmer and the classic bell-like spring reverb character.",
	BridgeFloydRose:       "A Floyd Rose double-locking tremolo allows dive bombs and flutter while staying perfectly in tune.",
	BridgeTwoPointTremolo: "The two-point tremolo balances smooth vibrato action with modern tuning stability.",
}

var pickupCharacteristics = map[PickupConfig]string{
	PickupsSSS: "Three single coils deliver glassy cleans, quack in the in-between positions and vintage chime.",
	PickupsHSS: "A bridge humbucker with two single coils pairs fat high-gain leads with classic clean quack.",
	PickupsHH:  "Dual humbuckers produce a thick, hum-free voice with compressed highs and powerful mids.",
	PickupsP90: "P90 soapbars split the difference, raw and midrange-forward with more bite than a humbucker.",
	PickupsHSH: "The humbucker-single-humbucker set covers shred leads and scooped cleans from one instrument.",
}

// BodyWoods returns the closed set of body woods in a stable order.
func BodyWoods() []BodyWood {
	return []BodyWood{BodyWoodAlder, BodyWoodSwampAsh, BodyWoodMahogany, BodyWoodMaple, BodyWoodBasswood}
}

func NeckProfiles() []NeckProfile {
	return []NeckProfile{NeckProfileModernC, NeckProfileVintage50s, NeckProfileSlim60s, NeckProfileChunkyU, NeckProfileCompoundD}
}

func FretboardMaterials() []FretboardMaterial {
	return []FretboardMaterial{FretboardRosewood, FretboardMaple, FretboardEbony, FretboardPauFerro}
}

func BridgeSystems() []BridgeSystem {
	return []BridgeSystem{BridgeHardtail, BridgeTuneOMatic, BridgeVintageTremolo, BridgeFloydRose, BridgeTwoPointTremolo}
}

func PickupConfigs() []PickupConfig {
	return []PickupConfig{PickupsSSS, PickupsHSS, PickupsHH, PickupsP90, PickupsHSH}
}

func (w BodyWood) Valid() bool {
	_, ok := bodyWoodCharacteristics[w]
	return ok
}

func (n NeckProfile) Valid() bool {
	_, ok := neckProfileCharacteristics[n]
	return ok
}

func (f FretboardMaterial) Valid() bool {
	_, ok := fretboardCharacteristics[f]
	return ok
}

func (b BridgeSystem) Valid() bool {
	_, ok := bridgeCharacteristics[b]
	return ok
}

func (p PickupConfig) Valid() bool {
	_, ok := pickupCharacteristics[p]
	return ok
}

func (w BodyWood) Describe() (string, error) {
	if s, ok := bodyWoodCharacteristics[w]; ok {
		return s, nil
	}
	return "", fmt.Errorf("unknown body wood: %q", string(w))
}

func (n NeckProfile) Describe() (string, error) {
	if s, ok := neckProfileCharacteristics[n]; ok {
		return s, nil
	}
	return "", fmt.Errorf("unknown neck profile: %q", string(n))
}

func (f FretboardMaterial) Describe() (string, error) {
	if s, ok := fretboardCharacteristics[f]; ok {
		return s, nil
	}
	return "", fmt.Errorf("unknown fretboard material: %q", string(f))
}

func (b BridgeSystem) Describe() (string, error) {
	if s, ok := bridgeCharacteristics[b]; ok {
		return s, nil
	}
	return "", fmt.Errorf("unknown bridge system: %q", string(b))
}

func (p PickupConfig) Describe() (string, error) {
	if s, ok := pickupCharacteristics[p]; ok {
		return s, nil
	}
	return "", fmt.Errorf("unknown pickup configuration: %q", string(p))
}
