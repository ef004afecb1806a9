package mapper

import (
	"encoding/json"
	"errors"
	"fmt"

	. "github.com/ttpr0/go-ptmapper/util"
	"gopkg.in/yaml.v3"
)

// Network mode assigned to synthesized links.
const ARTIFICIAL_LINK_MODE = "artificial"

//**********************************************************
// enums
//**********************************************************

type TravelCostType byte

const (
	LINK_LENGTH TravelCostType = 0
	TRAVEL_TIME TravelCostType = 1
)

func (self TravelCostType) String() string {
	switch self {
	case LINK_LENGTH:
		return "linkLength"
	case TRAVEL_TIME:
		return "travelTime"
	default:
		panic("unknown travel cost type")
	}
}
func (self TravelCostType) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *TravelCostType) UnmarshalJSON(data []byte) error {
	var typ string
	err := json.Unmarshal(data, &typ)
	if err != nil {
		return err
	}
	*self, err = TravelCostTypeFromString(typ)
	return err
}
func (self TravelCostType) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *TravelCostType) UnmarshalYAML(value *yaml.Node) error {
	typ, err := TravelCostTypeFromString(value.Value)
	if err != nil {
		return err
	}
	*self = typ
	return nil
}

func TravelCostTypeFromString(s string) (TravelCostType, error) {
	switch s {
	case "linkLength":
		return LINK_LENGTH, nil
	case "travelTime":
		return TRAVEL_TIME, nil
	default:
		return LINK_LENGTH, errors.New("unknown travel cost type")
	}
}

//**********************************************************
// options
//**********************************************************

type Options struct {
	TravelCostType               TravelCostType         `yaml:"travel-cost-type" json:"travel_cost_type"`
	MaxTravelCostFactor          float64                `yaml:"max-travel-cost-factor" json:"max_travel_cost_factor"`
	NLinkThreshold               int                    `yaml:"n-link-threshold" json:"n_link_threshold"`
	MaxLinkCandidateDistance     float64                `yaml:"max-link-candidate-distance" json:"max_link_candidate_distance"`
	CandidateDistanceMultiplier  float64                `yaml:"candidate-distance-multiplier" json:"candidate_distance_multiplier"`
	RoutingWithCandidateDistance bool                   `yaml:"routing-with-candidate-distance" json:"routing_with_candidate_distance"`
	NumOfThreads                 int                    `yaml:"num-of-threads" json:"num_of_threads"`
	RemoveNotUsedStopFacilities  bool                   `yaml:"remove-not-used-stop-facilities" json:"remove_not_used_stop_facilities"`
	ModesToKeepOnCleanUp         []string               `yaml:"modes-to-keep-on-clean-up" json:"modes_to_keep_on_clean_up"`
	ScheduleFreespeedModes       []string               `yaml:"schedule-freespeed-modes" json:"schedule_freespeed_modes"`
	TransportModeAssignment      Dict[string, []string] `yaml:"transport-mode-assignment" json:"transport_mode_assignment"`
}

func DefaultOptions() Options {
	return Options{
		TravelCostType:               LINK_LENGTH,
		MaxTravelCostFactor:          5.0,
		NLinkThreshold:               6,
		MaxLinkCandidateDistance:     90.0,
		CandidateDistanceMultiplier:  1.6,
		RoutingWithCandidateDistance: true,
		NumOfThreads:                 2,
		RemoveNotUsedStopFacilities:  true,
		ModesToKeepOnCleanUp:         []string{"car"},
		ScheduleFreespeedModes:       []string{ARTIFICIAL_LINK_MODE},
		TransportModeAssignment: Dict[string, []string]{
			"bus":  {"car", "bus"},
			"rail": {"rail", "light_rail"},
		},
	}
}

func (self Options) Check() error {
	if self.MaxTravelCostFactor < 1 {
		return errors.New("maxTravelCostFactor cannot be less than 1")
	}
	if self.NLinkThreshold < 1 {
		return fmt.Errorf("nLinkThreshold must be at least 1, got %v", self.NLinkThreshold)
	}
	if self.MaxLinkCandidateDistance <= 0 {
		return fmt.Errorf("maxLinkCandidateDistance must be positive, got %v", self.MaxLinkCandidateDistance)
	}
	if self.NumOfThreads < 1 {
		return fmt.Errorf("numOfThreads must be at least 1, got %v", self.NumOfThreads)
	}
	return nil
}

// Multipliers below 1 are floored, not rejected.
func (self Options) Normalized() Options {
	if self.CandidateDistanceMultiplier < 1 {
		self.CandidateDistanceMultiplier = 1
	}
	return self
}

// Lookup from schedule mode to the set of allowed network modes.
func (self *Options) ModeAssignment() Dict[string, Dict[string, bool]] {
	assignment := NewDict[string, Dict[string, bool]](self.TransportModeAssignment.Length())
	for schedule_mode, network_modes := range self.TransportModeAssignment {
		modes := NewDict[string, bool](len(network_modes))
		for _, m := range network_modes {
			modes[m] = true
		}
		assignment[schedule_mode] = modes
	}
	return assignment
}
