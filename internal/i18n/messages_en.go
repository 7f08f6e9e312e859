package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	// Event log
	message.SetString(lang, "log.build_started", "Building of a %s started ..")
	message.SetString(lang, "log.build_finished", "Finished construction of a %s")
	message.SetString(lang, "log.build_cancelled", "Construction of a %s was abandoned")
	message.SetString(lang, "log.law_enacted", "The Senate passed the %s")
	message.SetString(lang, "log.popup_resolved", "%s: %s")
	message.SetString(lang, "log.debug", "Message #%d")

	// Effects
	message.SetString(lang, "effect.building_name", "Building %s")
	message.SetString(lang, "effect.building_desc", "%d days left, - %.2f gold / day")
	message.SetString(lang, "effect.building_paused", "%d days left, halted")
	message.SetString(lang, "effect.law_name", "Enacting %s")
	message.SetString(lang, "effect.law_desc", "%d days left, - %.2f %s / day")

	// Imperial demand
	message.SetString(lang, "popup.demand.title", "War effort in the East requires resources ...")
	message.SetString(lang, "popup.demand.desc", "Pompey marches against the remnants of the Seleucid Empire and the Senate demands that every colony contribute to the campaign. What will %s send?")
	message.SetString(lang, "popup.demand.gold", "Send a wagon of gold!")
	message.SetString(lang, "popup.demand.gold_hover", "-50.0 gold")
	message.SetString(lang, "popup.demand.men", "Send Pompey the finest Legionnaires!")
	message.SetString(lang, "popup.demand.men_hover", "-50 population")

	// Capacities
	message.SetString(lang, "capacity.political", "Political")
	message.SetString(lang, "capacity.military", "Military")
	message.SetString(lang, "capacity.diplomatic", "Diplomatic")

	// Outcomes
	message.SetString(lang, "outcome.republic", "Republic")
	message.SetString(lang, "outcome.bankrupt", "Bankrupt")
	message.SetString(lang, "outcome.irrelevance", "Irrelevance")

	// Dashboard
	message.SetString(lang, "ui.population", "Population")
	message.SetString(lang, "ui.gold", "Gold")
	message.SetString(lang, "ui.food", "Food")
	message.SetString(lang, "ui.land", "Land")
	message.SetString(lang, "ui.speed", "Speed")
	message.SetString(lang, "ui.paused", "Paused")
	message.SetString(lang, "ui.effects", "Effects")
	message.SetString(lang, "ui.constructions", "Constructions")
	message.SetString(lang, "ui.laws", "Laws")
	message.SetString(lang, "ui.events", "Events")
	message.SetString(lang, "ui.no_events", "Nothing of note has happened.")
	message.SetString(lang, "ui.laws_locked", "Build a senate house to enact laws.")
	message.SetString(lang, "ui.help", "Help")
	message.SetString(lang, "ui.capacities", "Capacities")
	message.SetString(lang, "ui.game_over", "The colony is lost: %s. Press q to leave.")
	message.SetString(lang, "ui.enacted", "enacted on %s")
}
