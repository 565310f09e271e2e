package gamify

import (
	"time"

	"fintrack/internal/core"
)

type Tier string

const (
	Bronze   Tier = "bronze"
	Silver   Tier = "silver"
	Gold     Tier = "gold"
	Platinum Tier = "platinum"
)

// AchievementDef is a static catalog entry. Target carries the numeric
// goal for progress display; behavior depends only on Check.
type AchievementDef struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Tier        Tier      `json:"tier"`
	Target      int       `json:"target,omitempty"`
	Check       Predicate `json:"-"`
}

// Unlocked records a permanent achievement unlock. Append-only: an ID
// appears at most once, ever, and no unlock is revoked even if the
// predicate later turns false again.
type Unlocked struct {
	AchievementID string    `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// Achievements returns the full catalog. Order matters: the unlock scan
// walks it top to bottom within one pass, so meta entries that read the
// unlocked count (completionist) sit at the end.
func Achievements() []AchievementDef {
	return []AchievementDef{
		// Bronze
		{ID: "first_transaction", Name: "First Steps", Description: "Add your first transaction", Tier: Bronze, Target: 1, Check: txCountAtLeast(1)},
		{ID: "five_transactions", Name: "Early Bird", Description: "Record 5 transactions", Tier: Bronze, Target: 5, Check: txCountAtLeast(5)},
		{ID: "ten_transactions", Name: "Getting Started", Description: "Record 10 transactions", Tier: Bronze, Target: 10, Check: txCountAtLeast(10)},
		{ID: "twenty_transactions", Name: "Habit Former", Description: "Record 20 transactions", Tier: Bronze, Target: 20, Check: txCountAtLeast(20)},
		{ID: "first_income", Name: "Money Maker", Description: "Record your first income", Tier: Bronze, Target: 1, Check: kindCountAtLeast(core.Income, 1)},
		{ID: "first_expense", Name: "Spender", Description: "Record your first expense", Tier: Bronze, Target: 1, Check: kindCountAtLeast(core.Expense, 1)},
		{ID: "budget_setter", Name: "Budget Planner", Description: "Set a custom budget", Tier: Bronze, Target: 1, Check: budgetsCustomized()},
		{ID: "first_challenge", Name: "Challenge Accepted", Description: "Complete your first daily challenge", Tier: Bronze, Target: 1, Check: challengesCompletedAtLeast(1)},
		{ID: "level_2", Name: "Newbie", Description: "Reach Level 2", Tier: Bronze, Target: 2, Check: levelAtLeast(2)},
		{ID: "food_tracker", Name: "Foodie", Description: "Record 10 food expenses", Tier: Bronze, Target: 10, Check: categoryCountAtLeast(core.Food, 10)},
		{ID: "transport_tracker", Name: "On The Move", Description: "Record 10 transport expenses", Tier: Bronze, Target: 10, Check: categoryCountAtLeast(core.Transport, 10)},
		{ID: "entertainment_tracker", Name: "Fun Seeker", Description: "Record 10 entertainment expenses", Tier: Bronze, Target: 10, Check: categoryCountAtLeast(core.Entertainment, 10)},
		{ID: "shopping_tracker", Name: "Shopaholic", Description: "Record 10 shopping expenses", Tier: Bronze, Target: 10, Check: categoryCountAtLeast(core.Shopping, 10)},
		{ID: "health_tracker", Name: "Health Conscious", Description: "Record 10 health expenses", Tier: Bronze, Target: 10, Check: categoryCountAtLeast(core.Health, 10)},
		{ID: "bills_tracker", Name: "Bill Payer", Description: "Record 10 bill payments", Tier: Bronze, Target: 10, Check: categoryCountAtLeast(core.Bills, 10)},
		{ID: "week_tracker", Name: "Weekly Warrior", Description: "Track expenses for 7 days", Tier: Bronze, Target: 7, Check: trackedForDays(7)},
		{ID: "dark_mode_user", Name: "Night Owl", Description: "Enable dark mode", Tier: Bronze, Target: 1, Check: func(v View) bool { return v.DarkMode }},
		{ID: "positive_balance", Name: "In The Green", Description: "Have a positive balance", Tier: Bronze, Target: 1, Check: balancePositive()},
		{ID: "hundred_xp", Name: "XP Hunter", Description: "Earn 100 XP", Tier: Bronze, Target: 100, Check: lifetimeXPAtLeast(100)},
		{ID: "recurring_setup", Name: "Auto Tracker", Description: "Set up a recurring transaction", Tier: Bronze, Target: 1, Check: recurringCountAtLeast(1)},

		// Silver
		{ID: "thirty_transactions", Name: "Regular Tracker", Description: "Record 30 transactions", Tier: Silver, Target: 30, Check: txCountAtLeast(30)},
		{ID: "fifty_transactions", Name: "Consistent Tracker", Description: "Record 50 transactions", Tier: Silver, Target: 50, Check: txCountAtLeast(50)},
		{ID: "seventy_five_transactions", Name: "Dedicated Tracker", Description: "Record 75 transactions", Tier: Silver, Target: 75, Check: txCountAtLeast(75)},
		{ID: "level_3", Name: "Intermediate", Description: "Reach Level 3", Tier: Silver, Target: 3, Check: levelAtLeast(3)},
		{ID: "level_5", Name: "Rising Star", Description: "Reach Level 5", Tier: Silver, Target: 5, Check: levelAtLeast(5)},
		{ID: "level_7", Name: "Experienced", Description: "Reach Level 7", Tier: Silver, Target: 7, Check: levelAtLeast(7)},
		{ID: "three_challenges", Name: "Challenge Enthusiast", Description: "Complete 3 daily challenges", Tier: Silver, Target: 3, Check: challengesCompletedAtLeast(3)},
		{ID: "five_challenges", Name: "Challenge Hunter", Description: "Complete 5 daily challenges", Tier: Silver, Target: 5, Check: challengesCompletedAtLeast(5)},
		{ID: "ten_challenges", Name: "Challenge Master", Description: "Complete 10 daily challenges", Tier: Silver, Target: 10, Check: challengesCompletedAtLeast(10)},
		{ID: "budget_keeper", Name: "Budget Keeper", Description: "Stay within budget for all categories", Tier: Silver, Target: 1, Check: allBudgetsWithin(1.0)},
		{ID: "month_tracker", Name: "Monthly Master", Description: "Track expenses for 30 days", Tier: Silver, Target: 30, Check: trackedForDays(30)},
		{ID: "ten_incomes", Name: "Income Collector", Description: "Record 10 income transactions", Tier: Silver, Target: 10, Check: kindCountAtLeast(core.Income, 10)},
		{ID: "five_hundred_xp", Name: "XP Collector", Description: "Earn 500 XP", Tier: Silver, Target: 500, Check: lifetimeXPAtLeast(500)},
		{ID: "balance_1000", Name: "Saver", Description: "Have a balance of ₹1,000+", Tier: Silver, Target: 1000, Check: balanceAtLeast(1000_00)},
		{ID: "balance_5000", Name: "Smart Saver", Description: "Have a balance of ₹5,000+", Tier: Silver, Target: 5000, Check: balanceAtLeast(5000_00)},
		{ID: "all_categories", Name: "Category Explorer", Description: "Use all expense categories", Tier: Silver, Target: 7, Check: categoriesCovered(false)},
		{ID: "export_data", Name: "Data Exporter", Description: "Export your data to CSV", Tier: Silver, Target: 1, Check: func(v View) bool { return v.HasExported }},
		{ID: "karma_90", Name: "Good Karma", Description: "Maintain karma above 90", Tier: Silver, Target: 90, Check: karmaAtLeast(90)},
		{ID: "twenty_food", Name: "Food Enthusiast", Description: "Record 20 food expenses", Tier: Silver, Target: 20, Check: categoryCountAtLeast(core.Food, 20)},
		{ID: "twenty_transport", Name: "Commuter", Description: "Record 20 transport expenses", Tier: Silver, Target: 20, Check: categoryCountAtLeast(core.Transport, 20)},
		{ID: "twenty_shopping", Name: "Shopping Expert", Description: "Record 20 shopping expenses", Tier: Silver, Target: 20, Check: categoryCountAtLeast(core.Shopping, 20)},
		{ID: "twenty_entertainment", Name: "Entertainment Lover", Description: "Record 20 entertainment expenses", Tier: Silver, Target: 20, Check: categoryCountAtLeast(core.Entertainment, 20)},
		{ID: "morning_tracker", Name: "Early Riser", Description: "Add a transaction before 9 AM", Tier: Silver, Target: 1, Check: createdBeforeHour(9)},
		{ID: "night_tracker", Name: "Night Worker", Description: "Add a transaction after 11 PM", Tier: Silver, Target: 1, Check: createdAtOrAfterHour(23)},
		{ID: "weekend_tracker", Name: "Weekend Warrior", Description: "Track expenses on weekends", Tier: Silver, Target: 1, Check: anyOnWeekend()},

		// Gold
		{ID: "hundred_transactions", Name: "Financial Pro", Description: "Record 100 transactions", Tier: Gold, Target: 100, Check: txCountAtLeast(100)},
		{ID: "150_transactions", Name: "Transaction Expert", Description: "Record 150 transactions", Tier: Gold, Target: 150, Check: txCountAtLeast(150)},
		{ID: "200_transactions", Name: "Transaction Master", Description: "Record 200 transactions", Tier: Gold, Target: 200, Check: txCountAtLeast(200)},
		{ID: "250_transactions", Name: "Transaction Legend", Description: "Record 250 transactions", Tier: Gold, Target: 250, Check: txCountAtLeast(250)},
		{ID: "level_10", Name: "Master Tracker", Description: "Reach Level 10", Tier: Gold, Target: 10, Check: levelAtLeast(10)},
		{ID: "level_12", Name: "Expert", Description: "Reach Level 12", Tier: Gold, Target: 12, Check: levelAtLeast(12)},
		{ID: "level_15", Name: "Advanced", Description: "Reach Level 15", Tier: Gold, Target: 15, Check: levelAtLeast(15)},
		{ID: "perfect_karma", Name: "Perfect Balance", Description: "Maintain 100 Karma", Tier: Gold, Target: 100, Check: func(v View) bool { return v.Progress.Karma == 100 }},
		{ID: "savings_master", Name: "Savings Champion", Description: "Have a balance of ₹10,000+", Tier: Gold, Target: 10000, Check: balanceAtLeast(10000_00)},
		{ID: "balance_25000", Name: "Wealthy", Description: "Have a balance of ₹25,000+", Tier: Gold, Target: 25000, Check: balanceAtLeast(25000_00)},
		{ID: "balance_50000", Name: "Rich", Description: "Have a balance of ₹50,000+", Tier: Gold, Target: 50000, Check: balanceAtLeast(50000_00)},
		{ID: "twenty_challenges", Name: "Challenge Veteran", Description: "Complete 20 daily challenges", Tier: Gold, Target: 20, Check: challengesCompletedAtLeast(20)},
		{ID: "thirty_challenges", Name: "Challenge Expert", Description: "Complete 30 daily challenges", Tier: Gold, Target: 30, Check: challengesCompletedAtLeast(30)},
		{ID: "two_months", Name: "Two Month Streak", Description: "Track expenses for 60 days", Tier: Gold, Target: 60, Check: trackedForDays(60)},
		{ID: "three_months", Name: "Quarter Master", Description: "Track expenses for 90 days", Tier: Gold, Target: 90, Check: trackedForDays(90)},
		{ID: "thousand_xp", Name: "XP Master", Description: "Earn 1,000 XP", Tier: Gold, Target: 1000, Check: lifetimeXPAtLeast(1000)},
		{ID: "fifty_incomes", Name: "Income Expert", Description: "Record 50 income transactions", Tier: Gold, Target: 50, Check: kindCountAtLeast(core.Income, 50)},
		{ID: "fifty_food", Name: "Food Connoisseur", Description: "Record 50 food expenses", Tier: Gold, Target: 50, Check: categoryCountAtLeast(core.Food, 50)},
		{ID: "fifty_transport", Name: "Travel Expert", Description: "Record 50 transport expenses", Tier: Gold, Target: 50, Check: categoryCountAtLeast(core.Transport, 50)},
		{ID: "fifty_shopping", Name: "Shopping Guru", Description: "Record 50 shopping expenses", Tier: Gold, Target: 50, Check: categoryCountAtLeast(core.Shopping, 50)},
		{ID: "budget_master_week", Name: "Budget Master", Description: "Stay within budget for a week", Tier: Gold, Target: 7, Check: weekBudgetDiscipline()},
		{ID: "five_recurring", Name: "Automation Expert", Description: "Set up 5 recurring transactions", Tier: Gold, Target: 5, Check: recurringCountAtLeast(5)},
		{ID: "notes_lover", Name: "Detail Oriented", Description: "Add notes to 20 transactions", Tier: Gold, Target: 20, Check: notesCountAtLeast(20)},
		{ID: "daily_tracker_7", Name: "Daily Dedication", Description: "Add at least 1 transaction daily for 7 days", Tier: Gold, Target: 7, Check: dailyStreak(7, 30)},
		{ID: "diverse_spending", Name: "Balanced Spender", Description: "Spend on all categories in one month", Tier: Gold, Target: 7, Check: categoriesCovered(true)},
		{ID: "big_saver", Name: "Big Saver", Description: "Save more than you spend in a month", Tier: Gold, Target: 1, Check: monthSurplus()},
		{ID: "frugal_month", Name: "Frugal Master", Description: "Spend less than ₹5,000 in a month", Tier: Gold, Target: 5000, Check: monthExpensesBelow(5000_00)},
		{ID: "high_earner", Name: "High Earner", Description: "Earn ₹50,000+ in income", Tier: Gold, Target: 50000, Check: totalByKindAtLeast(core.Income, 50000_00)},
		{ID: "big_spender", Name: "Big Spender", Description: "Track ₹100,000+ in expenses", Tier: Gold, Target: 100000, Check: totalByKindAtLeast(core.Expense, 100000_00)},

		// Platinum
		{ID: "three_hundred_transactions", Name: "Transaction Elite", Description: "Record 300 transactions", Tier: Platinum, Target: 300, Check: txCountAtLeast(300)},
		{ID: "four_hundred_transactions", Name: "Transaction Virtuoso", Description: "Record 400 transactions", Tier: Platinum, Target: 400, Check: txCountAtLeast(400)},
		{ID: "five_hundred_transactions", Name: "Ultimate Tracker", Description: "Record 500 transactions", Tier: Platinum, Target: 500, Check: txCountAtLeast(500)},
		{ID: "thousand_transactions", Name: "Transaction God", Description: "Record 1,000 transactions", Tier: Platinum, Target: 1000, Check: txCountAtLeast(1000)},
		{ID: "level_20", Name: "Legendary", Description: "Reach Level 20", Tier: Platinum, Target: 20, Check: levelAtLeast(20)},
		{ID: "level_25", Name: "Elite Master", Description: "Reach Level 25", Tier: Platinum, Target: 25, Check: levelAtLeast(25)},
		{ID: "level_30", Name: "Grandmaster", Description: "Reach Level 30", Tier: Platinum, Target: 30, Check: levelAtLeast(30)},
		{ID: "level_50", Name: "Ultimate Legend", Description: "Reach Level 50", Tier: Platinum, Target: 50, Check: levelAtLeast(50)},
		{ID: "fifty_challenges", Name: "Challenge Legend", Description: "Complete 50 daily challenges", Tier: Platinum, Target: 50, Check: challengesCompletedAtLeast(50)},
		{ID: "hundred_challenges", Name: "Challenge God", Description: "Complete 100 daily challenges", Tier: Platinum, Target: 100, Check: challengesCompletedAtLeast(100)},
		{ID: "six_months", Name: "Half Year Hero", Description: "Track expenses for 180 days", Tier: Platinum, Target: 180, Check: trackedForDays(180)},
		{ID: "year_veteran", Name: "Year Veteran", Description: "Use the app for 365 days", Tier: Platinum, Target: 365, Check: trackedForDays(365)},
		{ID: "two_years", Name: "Two Year Legend", Description: "Use the app for 730 days", Tier: Platinum, Target: 730, Check: trackedForDays(730)},
		{ID: "balance_100000", Name: "Wealthy Elite", Description: "Have a balance of ₹100,000+", Tier: Platinum, Target: 100000, Check: balanceAtLeast(100000_00)},
		{ID: "balance_500000", Name: "Half Million", Description: "Have a balance of ₹500,000+", Tier: Platinum, Target: 500000, Check: balanceAtLeast(500000_00)},
		{ID: "balance_million", Name: "Millionaire", Description: "Have a balance of ₹1,000,000+", Tier: Platinum, Target: 1000000, Check: balanceAtLeast(1000000_00)},
		{ID: "five_thousand_xp", Name: "XP Legend", Description: "Earn 5,000 XP", Tier: Platinum, Target: 5000, Check: lifetimeXPAtLeast(5000)},
		{ID: "ten_thousand_xp", Name: "XP God", Description: "Earn 10,000 XP", Tier: Platinum, Target: 10000, Check: lifetimeXPAtLeast(10000)},
		{ID: "hundred_incomes", Name: "Income Master", Description: "Record 100 income transactions", Tier: Platinum, Target: 100, Check: kindCountAtLeast(core.Income, 100)},
		{ID: "hundred_food", Name: "Food Master", Description: "Record 100 food expenses", Tier: Platinum, Target: 100, Check: categoryCountAtLeast(core.Food, 100)},
		{ID: "daily_tracker_30", Name: "Monthly Dedication", Description: "Add at least 1 transaction daily for 30 days", Tier: Platinum, Target: 30, Check: dailyStreak(30, 60)},
		{ID: "perfect_month", Name: "Perfect Month", Description: "Complete all daily challenges in a month", Tier: Platinum, Target: 30, Check: challengesCompletedAtLeast(30)},
		{ID: "income_million", Name: "Million Earner", Description: "Earn ₹1,000,000+ in income", Tier: Platinum, Target: 1000000, Check: totalByKindAtLeast(core.Income, 1000000_00)},
		{ID: "expense_million", Name: "Million Spender", Description: "Track ₹1,000,000+ in expenses", Tier: Platinum, Target: 1000000, Check: totalByKindAtLeast(core.Expense, 1000000_00)},
		// Reads the engine's own output; last in the catalog so a single
		// in-order pass sees every unlock from this pass before it runs.
		{ID: "completionist", Name: "Completionist", Description: "Unlock 90% of all achievements", Tier: Platinum, Target: 90, Check: unlockedAtLeast(90)},
	}
}
