package sim

import "strings"

// Catalog entries available to every colony.

func project(name, desc, help string, cost, upkeep float64, days int, variants ...*Effect) *Construction {
	return &Construction{
		Name:        name,
		Description: desc,
		Help:        help,
		Cost:        cost,
		Maintenance: upkeep,
		BuildTime:   days,
		Variants:    variants,
	}
}

func variant(name, desc string, b Behavior) *Effect {
	return &Effect{Name: name, Description: desc, Duration: Forever, Behavior: b}
}

// DefaultProjects returns a fresh copy of the construction catalog.
func DefaultProjects() []*Construction {
	return []*Construction{
		project("Insula", "Apartment block with space for 300 residents.",
			"Multistory apartment building for the plebeians.",
			10, 0.05, 60,
			&Effect{Name: "Insula", Duration: 300, Behavior: Housing{Residents: 1}}),
		project("Senate house", "Meeting place of the lawmaking part of the Republic",
			"Meeting place of the Senate. Enables laws and increases political power.",
			50, 0.05, 90,
			variant("Senate house", "Enables policies to be enacted",
				Grant{Political: 1, Diplomatic: 1, Laws: true})),
		project("Aqueduct", "Carries fresh water into the city",
			"Provides water to baths and fountains.",
			25, 0.25, 180,
			variant("Aqueduct", "Provides drinking water and bathing water", Grant{Diplomatic: 1})),
		project("Farm", "Piece of land producing various produce.",
			"Much of Roman society lived off the land. Farms like this one, scattered across the provinces, fed the mouths of Rome.",
			2, 0, 10,
			variant("Grape farm", "piece of land that produces grapes", Farm{Area: 1, Produce: Grapes}),
			variant("Wheat farm", "piece of land that produces wheat", Farm{Area: 1, Produce: Wheat}),
			variant("Olive farm", "piece of land producing olives", Farm{Area: 1, Produce: Olives})),
		project("Basilica", "Hall for courts and public business",
			"", 15, 0.2, 90,
			variant("Basilica", "Public building ...", Grant{Political: 1})),
		project("Forum", "Public space for commerce.",
			"Public square.", 50, 0.5, 360,
			variant("Forum", "Center of public life", Grant{Political: 1, Diplomatic: 1})),
		project("Coin mint", "Produces coinage.",
			"Provides coinage and eases the cost of running the colony.",
			30, 0.1, 60,
			variant("Coin mint", "Reduces gold usage", Coinage{Amount: 0.5})),
		project("Temple", "House of one of the gods",
			"Increases various powers.", 25, 0.15, 150,
			variant("Temple of Jupiter", "House of the God ruler", Grant{Diplomatic: 1}),
			variant("Temple of Mars", "House of the God of warfare.", Grant{Military: 1}),
			variant("Temple of Vulcan", "House of the God of fire and metalworking.", Inert{})),
		project("Port Ostia", "Enables import and export of foodstuffs to Rome.",
			"Enables import and export of foodstuffs.", 100, 1, 360,
			variant("Port Ostia", "", Inert{})),
		project("Circus Maximus", "Chariot races and games for the people",
			"", 100, 1, 360,
			variant("Circus Maximus", "Enables the aedile", Grant{Political: 2, Aedile: true})),
		project("Villa Publica", "Censors base of operations during the Republic",
			"", 50, 0.5, 60,
			variant("Villa Publica", "Enables the censor and diplomacy",
				Grant{Political: 1, Diplomatic: 1, Diplomacy: true, Censor: true})),
		project("Bakery", "Roman breadmaking industry",
			"Increases the amount of food produced by farms.", 15, 0.05, 45,
			variant("Bakery", "", Inert{})),
		project("Bath house", "Roman bath complexes were a crucial part of life in the city",
			"", 100, 1.5, 120,
			variant("Bath house", "", Inert{})),
	}
}

// LandTaxRate is the rate Lex Tributum Soli taxes land at.
const LandTaxRate = 0.2

// DefaultLaws returns a fresh copy of the laws every colony may pass.
func DefaultLaws() []*Law {
	return []*Law{
		{
			Name:         "Lex Tributum Soli",
			Description:  "Roman land tax based on size of the land",
			Help:         "Taxes farmed land. Costs political capacity while the Senate debates it.",
			Capacity:     Political,
			Cost:         1,
			CostDuration: 90,
			Policy:       &Effect{Duration: Forever, Behavior: LandTax{Rate: LandTaxRate}},
		},
	}
}

// Standing effects every colony starts with.

// NewConsumption returns the effect of the population eating.
func NewConsumption() *Effect {
	return &Effect{Duration: Forever, Behavior: Consumption{Rate: 0.002}}
}

// NewImperialDemand returns the effect that raises war-effort popups.
func NewImperialDemand() *Effect {
	return &Effect{Duration: Forever, Behavior: ImperialDemand{Chance: 0.05, Gold: 50, Levy: 50}}
}

// NewMaintenance returns the effect that charges building upkeep.
func NewMaintenance() *Effect {
	return &Effect{Duration: Forever, Behavior: Maintenance{}}
}

// NewHerald returns a visible effect that writes to the event log every tick.
func NewHerald() *Effect {
	return &Effect{
		Name:        "Debug Event",
		Description: "Testing the event log",
		Duration:    Forever,
		Behavior:    &Herald{},
	}
}

// FindProject returns the catalog project with the given name, ignoring case.
func (c *City) FindProject(name string) *Construction {
	for _, p := range c.projects {
		if strings.EqualFold(p.Name, name) {
			return p
		}
	}
	return nil
}

// FindLaw returns the law with the given name.
func (c *City) FindLaw(name string) *Law {
	for _, l := range c.laws {
		if strings.EqualFold(l.Name, name) {
			return l
		}
	}
	return nil
}
