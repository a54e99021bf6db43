package calendar

// targetHolidayList enumerates TARGET closing days. Good Friday and Easter
// Monday move each year; fixed-date closings (New Year, Labour Day,
// Christmas, Boxing Day) repeat annually.
var targetHolidayList = []string{
	// 2021
	"2021-01-01", "2021-04-02", "2021-04-05", "2021-05-01", "2021-12-25", "2021-12-26",
	// 2022
	"2022-01-01", "2022-04-15", "2022-04-18", "2022-05-01", "2022-12-25", "2022-12-26",
	// 2023
	"2023-01-01", "2023-04-07", "2023-04-10", "2023-05-01", "2023-12-25", "2023-12-26",
	// 2024
	"2024-01-01", "2024-03-29", "2024-04-01", "2024-05-01", "2024-12-25", "2024-12-26",
	// 2025
	"2025-01-01", "2025-04-18", "2025-04-21", "2025-05-01", "2025-12-25", "2025-12-26",
	// 2026
	"2026-01-01", "2026-04-03", "2026-04-06", "2026-05-01", "2026-12-25", "2026-12-26",
	// 2027
	"2027-01-01", "2027-03-26", "2027-03-29", "2027-05-01", "2027-12-25", "2027-12-26",
}
