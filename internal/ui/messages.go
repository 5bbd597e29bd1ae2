package ui

import (
	"fmt"
	"strings"
)

// messageText maps lookup keys to English templates. Placeholders are
// written {name} and filled from notice arguments.
var messageText = map[string]string{
	"tray.earned_money":       "💰 Earned {amount} coins!",
	"tray.unlock_achievement": "🏆 Achievement unlocked: {name}",
	"tray.study_complete":     "🎓 Finished studying {study}!",
	"messages.eating_done":    "🍖 Yum! All eaten.",
	"messages.cleaning_done":  "🛁 Squeaky clean!",
	"messages.playing_done":   "🎾 That was fun!",
	"messages.action_done":    "✅ Done!",
	"messages.evolution":      "✨ Evolved into {stage}!",
	"messages.level_up":       "⭐ Reached level {level}!",
	"messages.collapsed":      "😵 Collapsed from exhaustion...",
	"messages.auto_feed":      "🤖 Fed itself some {name}",
	"messages.auto_buy_feed":  "🤖 Bought and ate {name}",
	"messages.auto_clean":     "🤖 Cleaned up with {name}",
	"messages.auto_buy_clean": "🤖 Bought {name} and cleaned up",
	"messages.auto_work":      "🤖 Went to work as {name}",

	"messages.pet_busy_now":         "⏳ Busy right now!",
	"messages.pet_too_sick":         "🤒 Too unwell for that...",
	"messages.work_not_found":       "No such job",
	"messages.study_not_found":      "No such course",
	"messages.item_not_found":       "No such item",
	"messages.level_too_low":        "Level too low",
	"messages.strength_too_low":     "Not strong enough",
	"messages.dexterity_too_low":    "Not nimble enough",
	"messages.endurance_too_low":    "Not enough stamina",
	"messages.intelligence_too_low": "Not clever enough",
	"messages.luck_too_low":         "Not lucky enough",
	"messages.charm_too_low":        "Not charming enough",
	"messages.invalid_stage":        "Wrong age for that",
	"messages.prerequisite_not_met": "Needs another course first",
	"messages.too_hungry":           "🍽️ Too hungry for that",
	"messages.mood_too_low":         "😿 Not in the mood",
	"messages.too_dirty":            "Too dirty for that",
	"messages.too_sick":             "🤒 Too unwell for that",
	"messages.not_enough_coins":     "💸 Not enough coins",
	"messages.not_enough_items":     "🎒 None left in the bag",

	"adventure_results.unknown_location": "No such place",
	"adventure_results.level_low":        "Level too low to go there",
	"adventure_results.str_low":          "Not strong enough to go there",
	"adventure_results.dex_low":          "Not nimble enough to go there",
	"adventure_results.end_low":          "Not enough stamina to go there",
	"adventure_results.int_low":          "Not clever enough to go there",
	"adventure_results.luk_low":          "Not lucky enough to go there",
	"adventure_results.cha_low":          "Not charming enough to go there",
	"adventure_results.too_hungry":       "🍽️ Too hungry to travel",
	"adventure_results.sick":             "🤒 Too unwell to travel",
	"adventure_results.nothing_found":    "Wandered around, found nothing",
}

// Text renders key with args. Unknown keys fall back to a readable form
// of the key itself.
func Text(key string, args map[string]any) string {
	tmpl, ok := messageText[key]
	if !ok {
		tmpl = key
		if i := strings.LastIndex(key, "."); i >= 0 {
			tmpl = strings.ReplaceAll(key[i+1:], "_", " ")
		}
	}
	for k, v := range args {
		tmpl = strings.ReplaceAll(tmpl, "{"+k+"}", fmt.Sprint(v))
	}
	return tmpl
}
