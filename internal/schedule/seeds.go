package schedule

import "github.com/iliyamo/energopraktiki/internal/model"

// DefaultSeeds are the sessions shown for the bundled facilitators until
// someone edits their schedule.
func DefaultSeeds() map[string][]model.ScheduleSession {
	return map[string][]model.ScheduleSession{
		"1": {
			{ID: "session_1_alina_1", City: "Москва", Date: "2025-10-12", Location: `Студия "Свет", Арбат 12`, Time: "19:00–21:00", Cost: "5000 рублей"},
			{ID: "session_1_alina_2", City: "Москва", Date: "2025-10-19", Location: `Центр "Дыхание", Тверская 7`, Time: "11:00–13:00", Cost: "5000 рублей"},
		},
		"2": {
			{ID: "session_2_mark_1", City: "Санкт-Петербург", Date: "2025-10-15", Location: `Студия "Энергия", Невский 45`, Time: "18:00–20:00", Cost: "5500 рублей"},
		},
		"3": {
			{ID: "session_3_elena_1", City: "Казань", Date: "2025-10-10", Location: `Центр "Ясность", Баумана 25`, Time: "19:30–21:30", Cost: "4500 рублей"},
		},
		"4": {
			{ID: "session_4_roman_1", City: "Новосибирск", Date: "2025-10-18", Location: `Студия "Пробуждение", Ленина 20`, Time: "10:00–12:00", Cost: "5000 рублей"},
		},
	}
}
