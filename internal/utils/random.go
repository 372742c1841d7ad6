package utils

import (
	"fmt"
	"math/rand"

	"github.com/sysu-ecnc-dev/working-week/backend/internal/domain"
)

var departmentNames = []string{
	"网络中心", "信息中心", "图书馆", "教务处", "实验室", "服务台",
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
var digits = "0123456789"

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

// 用 Fisher-Yates 洗牌算法来生成随机的工作日
func GenerateRandomWeekdays() []int32 {
	days := []int32{0, 1, 2, 3, 4, 5, 6}

	for i := len(days) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		days[i], days[j] = days[j], days[i]
	}

	n := rand.Intn(len(days)) + 1

	return days[:n]
}

// GenerateRandomWorkingWeek 生成一个随机的工作周，同一天的班次互不重叠
func GenerateRandomWorkingWeek() *domain.WorkingWeek {
	name := departmentNames[rand.Intn(len(departmentNames))] + GenerateRandomID(2, 3)
	ww := &domain.WorkingWeek{
		Name:        name,
		Slug:        GenerateSlug(name),
		Description: "随机生成的工作周" + GenerateRandomID(10, 5),
	}

	shiftsNum := rand.Intn(4) + 1
	hourPerShift := 24 / shiftsNum

	for i := 0; i < shiftsNum; i++ {
		// 每个班次都落在自己的时间段内，因此不会冲突
		startHour := i * hourPerShift
		endHour := rand.Intn(hourPerShift) + startHour

		startMinute := rand.Intn(30)    // 0~29
		endMinute := rand.Intn(30) + 30 // 30~59

		for _, day := range GenerateRandomWeekdays() {
			ww.Shifts = append(ww.Shifts, domain.WorkingWeekShift{
				Weekday:   day,
				StartTime: fmt.Sprintf("%02d:%02d:00", startHour, startMinute),
				EndTime:   fmt.Sprintf("%02d:%02d:00", endHour, endMinute),
			})
		}
	}

	return ww
}
