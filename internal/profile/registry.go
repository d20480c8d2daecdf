package profile

import (
	"fmt"
	"sort"

	"github.com/irisforge/irisd/internal/store"
)

type document struct {
	Custom map[string]Profile `json:"custom_profiles"`
}

// Registry manages built-in and custom profiles plus which one is
// currently active, matching ProfileRegistry.
type Registry struct {
	store        *store.Store[document]
	custom       map[string]Profile
	activeName   string
}

// NewRegistry returns a Registry persisting custom profiles to path
// (typically data/profiles.json), loading any that already exist.
func NewRegistry(path string) (*Registry, error) {
	s := store.New[document](path)
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	if doc.Custom == nil {
		doc.Custom = map[string]Profile{}
	}
	return &Registry{store: s, custom: doc.Custom, activeName: Balanced.Name}, nil
}

func (r *Registry) persist() error {
	return r.store.Save(document{Custom: r.custom})
}

// AddCustom registers a new custom profile, rejecting names that shadow
// a built-in.
func (r *Registry) AddCustom(p Profile) (bool, error) {
	if _, ok := builtinProfiles[p.Name]; ok {
		return false, nil
	}
	if err := p.Validate(); err != nil {
		return false, err
	}
	r.custom[p.Name] = p
	if err := r.persist(); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveCustom deletes a custom profile by name, reporting whether it
// existed.
func (r *Registry) RemoveCustom(name string) (bool, error) {
	if _, ok := r.custom[name]; !ok {
		return false, nil
	}
	delete(r.custom, name)
	if err := r.persist(); err != nil {
		return false, err
	}
	return true, nil
}

// Get returns a profile by name, checking custom profiles before
// built-ins.
func (r *Registry) Get(name string) (Profile, bool) {
	if p, ok := r.custom[name]; ok {
		return p, true
	}
	if p, ok := builtinProfiles[name]; ok {
		return p, true
	}
	return Profile{}, false
}

// List returns every available profile name: built-ins first, then
// custom, matching list_profiles.
func (r *Registry) List() []string {
	names := append([]string{}, BuiltinNames()...)
	sort.Strings(names)
	custom := make([]string, 0, len(r.custom))
	for name := range r.custom {
		custom = append(custom, name)
	}
	sort.Strings(custom)
	return append(names, custom...)
}

// SetActive marks name as the active profile, failing if it does not
// exist.
func (r *Registry) SetActive(name string) bool {
	if _, ok := r.Get(name); !ok {
		return false
	}
	r.activeName = name
	return true
}

// Active returns the currently active profile.
func (r *Registry) Active() Profile {
	p, _ := r.Get(r.activeName)
	return p
}

// ActiveName returns the name of the currently active profile.
func (r *Registry) ActiveName() string { return r.activeName }

// FromTemplate builds and registers a new custom profile by copying
// template and applying field-level overrides, matching
// create_profile_from_template. A name that shadows a built-in is an
// error. overrides keys are Profile json tags, but only the ones handled
// by applyOverrides take effect (the three trade-off floats,
// cost_sensitivity, max_tools_per_step, max_retries,
// give_up_after_errors, collaboration_mode, prefer_tools_over_model and
// prefer_skills_over_tools); any other key, or a value not of the Go type
// that key expects (float64, int, string or bool), is ignored.
func (r *Registry) FromTemplate(name, templateName string, overrides map[string]any) (Profile, error) {
	template, ok := r.Get(templateName)
	if !ok {
		return Profile{}, fmt.Errorf("unknown template profile %q", templateName)
	}

	p := template
	p.Name = name
	p.Description = fmt.Sprintf("Modified %s", templateName)
	applyOverrides(&p, overrides)

	added, err := r.AddCustom(p)
	if err != nil {
		return Profile{}, err
	}
	if !added {
		return Profile{}, fmt.Errorf("profile name %q shadows a built-in profile", name)
	}
	return p, nil
}

func applyOverrides(p *Profile, overrides map[string]any) {
	for key, value := range overrides {
		switch key {
		case "creativity_vs_precision":
			if v, ok := value.(float64); ok {
				p.CreativityVsPrecision = v
			}
		case "speed_vs_accuracy":
			if v, ok := value.(float64); ok {
				p.SpeedVsAccuracy = v
			}
		case "risk_tolerance":
			if v, ok := value.(float64); ok {
				p.RiskTolerance = v
			}
		case "cost_sensitivity":
			if v, ok := value.(float64); ok {
				p.CostSensitivity = v
			}
		case "max_tools_per_step":
			if v, ok := value.(int); ok {
				p.MaxToolsPerStep = v
			}
		case "max_retries":
			if v, ok := value.(int); ok {
				p.MaxRetries = v
			}
		case "give_up_after_errors":
			if v, ok := value.(int); ok {
				p.GiveUpAfterErrors = v
			}
		case "collaboration_mode":
			if v, ok := value.(string); ok {
				p.CollaborationMode = CollaborationMode(v)
			}
		case "prefer_tools_over_model":
			if v, ok := value.(bool); ok {
				p.PreferToolsOverModel = v
			}
		case "prefer_skills_over_tools":
			if v, ok := value.(bool); ok {
				p.PreferSkillsOverTools = v
			}
		}
	}
}
