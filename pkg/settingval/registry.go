package settingval

import (
	"rag-admin-be/internal/entity"
)

// Definition declares one known site setting: its group, data type,
// default value and what it is for. The database stores overrides only;
// anything not overridden answers with the default from this registry.
type Definition struct {
	Name         string
	Group        string
	DataType     entity.SettingDataType
	DefaultValue interface{}
	Description  string
}

var registry = []Definition{
	// website
	{
		Name:         "title",
		Group:        entity.SettingGroupWebsite,
		DataType:     entity.SettingTypeString,
		DefaultValue: "RAG Platform",
		Description:  "Site title shown in the header and browser tab.",
	},
	{
		Name:         "description",
		Group:        entity.SettingGroupWebsite,
		DataType:     entity.SettingTypeString,
		DefaultValue: "Conversational search over your own documents.",
		Description:  "Meta description used on the landing page.",
	},
	{
		Name:         "logo_in_dark_mode",
		Group:        entity.SettingGroupWebsite,
		DataType:     entity.SettingTypeString,
		DefaultValue: "",
		Description:  "Logo URL used on dark backgrounds.",
	},
	{
		Name:         "homepage_title",
		Group:        entity.SettingGroupWebsite,
		DataType:     entity.SettingTypeString,
		DefaultValue: "Ask anything about your knowledge bases",
		Description:  "Headline on the public chat page.",
	},
	{
		Name:         "homepage_example_questions",
		Group:        entity.SettingGroupWebsite,
		DataType:     entity.SettingTypeJSON,
		DefaultValue: []interface{}{"What is TiKV?", "Does TiDB support FOREIGN KEY?"},
		Description:  "Example questions offered to first-time visitors.",
	},
	{
		Name:         "social_links",
		Group:        entity.SettingGroupWebsite,
		DataType:     entity.SettingTypeJSON,
		DefaultValue: map[string]interface{}{"github": "", "twitter": "", "discord": ""},
		Description:  "Footer social links; empty entries are hidden.",
	},

	// custom_js (embeddable widget)
	{
		Name:         "custom_js_button_label",
		Group:        entity.SettingGroupCustomJS,
		DataType:     entity.SettingTypeString,
		DefaultValue: "Ask AI",
		Description:  "Label of the floating widget button.",
	},
	{
		Name:         "custom_js_example_questions",
		Group:        entity.SettingGroupCustomJS,
		DataType:     entity.SettingTypeJSON,
		DefaultValue: []interface{}{},
		Description:  "Example questions shown inside the widget.",
	},
	{
		Name:         "custom_js_logo_src",
		Group:        entity.SettingGroupCustomJS,
		DataType:     entity.SettingTypeString,
		DefaultValue: "",
		Description:  "Logo rendered in the widget header.",
	},

	// chat
	{
		Name:         "max_question_length",
		Group:        entity.SettingGroupChat,
		DataType:     entity.SettingTypeInt,
		DefaultValue: 1024,
		Description:  "Maximum characters accepted per question.",
	},
	{
		Name:         "enable_post_verification",
		Group:        entity.SettingGroupChat,
		DataType:     entity.SettingTypeBool,
		DefaultValue: false,
		Description:  "Run the post-answer verification pass when available.",
	},
	{
		Name:         "langfuse_trace_base_url",
		Group:        entity.SettingGroupChat,
		DataType:     entity.SettingTypeString,
		DefaultValue: "",
		Description:  "Base URL used to build message trace links.",
	},

	// evaluation
	{
		Name:         "evaluation_keyword_min_length",
		Group:        entity.SettingGroupEvaluation,
		DataType:     entity.SettingTypeInt,
		DefaultValue: 3,
		Description:  "Reference words shorter than this are ignored by keyword recall.",
	},
	{
		Name:         "evaluation_concurrency",
		Group:        entity.SettingGroupEvaluation,
		DataType:     entity.SettingTypeInt,
		DefaultValue: 1,
		Description:  "Items evaluated in parallel per running task.",
	},
	{
		Name:         "evaluation_pass_threshold",
		Group:        entity.SettingGroupEvaluation,
		DataType:     entity.SettingTypeFloat,
		DefaultValue: 0.7,
		Description:  "Semantic similarity at or above this counts as a pass.",
	},
}

var registryByName = func() map[string]Definition {
	m := make(map[string]Definition, len(registry))
	for _, def := range registry {
		m[def.Name] = def
	}
	return m
}()

// Lookup returns the definition for a setting name.
func Lookup(name string) (Definition, bool) {
	def, ok := registryByName[name]
	return def, ok
}

// All returns every known definition in declaration order.
func All() []Definition {
	out := make([]Definition, len(registry))
	copy(out, registry)
	return out
}

// Groups returns the distinct setting groups in declaration order.
func Groups() []string {
	seen := map[string]bool{}
	var out []string
	for _, def := range registry {
		if !seen[def.Group] {
			seen[def.Group] = true
			out = append(out, def.Group)
		}
	}
	return out
}
