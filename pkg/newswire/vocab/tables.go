package vocab

import "github.com/belga/newswire/pkg/newswire/item"

func tr(fr, nl string) *item.Translations {
	return &item.Translations{Name: map[string]string{"fr": fr, "nl": nl}}
}

// builtinTables are the compiled-in vocabulary defaults. Deployments
// override them with a YAML file; the defaults cover the codes the
// wire providers actually send so the core works with zero files.
var builtinTables = map[string][]Term{
	SchemeIPTCSubjects: {
		{QCode: "01000000", Name: "arts, culture and entertainment", IsActive: true},
		{QCode: "01001000", Name: "archaeology", IsActive: true},
		{QCode: "01002000", Name: "architecture", IsActive: true},
		{QCode: "01011000", Name: "music", IsActive: true},
		{QCode: "01026000", Name: "mass media", IsActive: true},
		{QCode: "02000000", Name: "crime, law and justice", IsActive: true},
		{QCode: "03000000", Name: "disaster and accident", IsActive: true},
		{QCode: "04000000", Name: "economy, business and finance", IsActive: true},
		{QCode: "04001000", Name: "agriculture", IsActive: true},
		{QCode: "04007000", Name: "consumer goods", IsActive: true},
		{QCode: "06000000", Name: "environmental issue", IsActive: true},
		{QCode: "08000000", Name: "human interest", IsActive: true},
		{QCode: "08003002", Name: "record and achievement", IsActive: true},
		{QCode: "11000000", Name: "politics", IsActive: true},
		{QCode: "14000000", Name: "social issue", IsActive: true},
		{QCode: "15000000", Name: "sport", IsActive: true},
		{QCode: "16000000", Name: "unrest, conflicts and war", IsActive: true},
	},
	SchemeCountry: {
		{QCode: "country_bel", Name: "Belgium", IsActive: true, Translations: tr("Belgique", "België")},
		{QCode: "country_fra", Name: "France", IsActive: true, Translations: tr("France", "Frankrijk")},
		{QCode: "country_nld", Name: "Netherlands", IsActive: true, Translations: tr("Pays-Bas", "Nederland")},
		{QCode: "country_deu", Name: "Germany", IsActive: true, Translations: tr("Allemagne", "Duitsland")},
		{QCode: "country_ita", Name: "Italy", IsActive: true, Translations: tr("Italie", "Italië")},
		{QCode: "country_che", Name: "Switzerland", IsActive: true, Translations: tr("Suisse", "Zwitserland")},
		{QCode: "country_rus", Name: "Russian Federation", IsActive: true, Translations: tr("Russie", "Rusland")},
		{QCode: "country_jpn", Name: "Japan", IsActive: true, Translations: tr("Japon", "Japan")},
		{QCode: "country_fin", Name: "Finland", IsActive: true, Translations: tr("Finlande", "Finland")},
		{QCode: "country_gbr", Name: "United Kingdom", IsActive: true, Translations: tr("Royaume-Uni", "Verenigd Koninkrijk")},
		{QCode: "country_usa", Name: "United States", IsActive: true, Translations: tr("États-Unis", "Verenigde Staten")},
		{QCode: "country_ukr", Name: "Ukraine", IsActive: true, Translations: tr("Ukraine", "Oekraïne")},
		{QCode: "country_ind", Name: "India", IsActive: true, Translations: tr("Inde", "India")},
	},
	SchemeDistribution: {
		{QCode: "default", Name: "default", IsActive: true},
		{QCode: "bilingual", Name: "bilingual", IsActive: true},
	},
	SchemeServicesProducts: {
		{QCode: "NEWS/GENERAL", Name: "NEWS/GENERAL", Parent: "NEWS", IsActive: true},
		{QCode: "NEWS/POLITICS", Name: "NEWS/POLITICS", Parent: "NEWS", IsActive: true},
		{QCode: "NEWS/ECONOMY", Name: "NEWS/ECONOMY", Parent: "NEWS", IsActive: true},
		{QCode: "NEWS/SPORTS", Name: "NEWS/SPORTS", Parent: "NEWS", IsActive: true},
		{QCode: "BIN/ALG", Name: "BIN/ALG", Parent: "BIN", IsActive: true},
	},
	SchemeNewsItemTypes: {
		{QCode: "NEWS", Name: "NEWS", IsActive: true},
		{QCode: "TIP", Name: "TIP", IsActive: true},
		{QCode: "BRIEF", Name: "BRIEF", IsActive: true},
	},
	SchemeSources: {
		{QCode: "ATS", Name: "ATS", IsActive: true},
		{QCode: "ANSA", Name: "ANSA", IsActive: true},
		{QCode: "TASS", Name: "TASS", IsActive: true},
		{QCode: "KYODO", Name: "KYODO", IsActive: true},
		{QCode: "STT", Name: "STT", IsActive: true},
		{QCode: "EFE", Name: "EFE", IsActive: true},
		{QCode: "BELGA", Name: "BELGA", IsActive: true},
	},
	SchemeCategories: {
		{QCode: "POL", Name: "POLITICS", IsActive: true},
		{QCode: "ECO", Name: "ECONOMY", IsActive: true},
		{QCode: "SPO", Name: "SPORTS", IsActive: true},
		{QCode: "CUL", Name: "CULTURE", IsActive: true},
		{QCode: "GENERAL", Name: "GENERAL", IsActive: true},
	},
	SchemeEventCalendars: {
		{QCode: "general", Name: "General", IsActive: true},
		{QCode: "culture", Name: "Culture", IsActive: true},
		{QCode: "business", Name: "Business", IsActive: true},
		{QCode: "sports", Name: "Sports", IsActive: true},
	},
}
