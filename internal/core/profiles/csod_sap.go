package profiles

import "github.com/JonMunkholm/recon/internal/core"

// Column names as they appear in the CSOD user report and the SAP headcount
// export.
const (
	csodIDColumn       = "ID do Usuário"
	csodPositionColumn = "Posição ID"
	sapIDColumn        = "NP"
	sapPositionColumn  = "Cargo - Cód."
	sapStatusColumn    = "Desc. C. Custo"

	// sapLeaveMarker matches "Afastado", "Afastada", "Afastados" cost centers.
	sapLeaveMarker = "afastad"
)

// sapInvalidPrefixes are placeholder and sentinel number ranges that never
// belong to a real employee.
var sapInvalidPrefixes = []string{"100008", "89", "70"}

func csodSAP() core.Settings {
	return core.Settings{
		SourceA: core.SourceSpec{
			Label:          "CSOD",
			IDColumn:       csodIDColumn,
			PositionColumn: csodPositionColumn,
		},
		SourceB: core.SourceSpec{
			Label:          "SAP",
			IDColumn:       sapIDColumn,
			PositionColumn: sapPositionColumn,
		},
		MinIDDigits:       core.DefaultMinIDDigits,
		InvalidIDPrefixes: append([]string(nil), sapInvalidPrefixes...),
		StatusColumn:      sapStatusColumn,
		StatusMarker:      sapLeaveMarker,
		HeaderScanRows:    core.DefaultHeaderScanRows,
	}
}

func init() {
	core.RegisterProfile(core.Profile{
		Key:         "csod_sap",
		Label:       "CSOD x SAP",
		Description: "CSOD user report against SAP headcount, excluding employees on leave and placeholder IDs",
		Settings:    csodSAP(),
	})

	strict := csodSAP()
	strict.MinIDDigits = 5
	core.RegisterProfile(core.Profile{
		Key:         "csod_sap_strict_ids",
		Label:       "CSOD x SAP (5+ digit IDs)",
		Description: "Same as CSOD x SAP but only digit runs of five or more count as employee IDs",
		Settings:    strict,
	})

	core.RegisterProfile(core.Profile{
		Key:         "csod_sap_basic",
		Label:       "CSOD x SAP (basic layout)",
		Description: "Older exports with 'Posição' and 'Cargo' columns and no exclusion rules",
		Settings: core.Settings{
			SourceA: core.SourceSpec{
				Label:          "CSOD",
				IDColumn:       csodIDColumn,
				PositionColumn: "Posição",
			},
			SourceB: core.SourceSpec{
				Label:          "SAP",
				IDColumn:       sapIDColumn,
				PositionColumn: "Cargo",
			},
			MinIDDigits:    core.DefaultMinIDDigits,
			HeaderScanRows: core.DefaultHeaderScanRows,
		},
	})
}
