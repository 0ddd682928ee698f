package errclass

import "golang.org/x/text/language"

var supported = []language.Tag{
	language.English,
	language.Russian,
}

var matcher = language.NewMatcher(supported)

var catalog = map[language.Tag]map[Kind]string{
	language.English: {
		KindValidation:   "Please check the highlighted field",
		KindDuplicate:    "This entry already exists",
		KindNotFound:     "The entry no longer exists",
		KindUnauthorized: "You do not have permission to perform this action",
		KindAPIFetch:     "Could not fetch the word from the dictionary",
		KindJSONParse:    "The JSON document could not be parsed",
		KindDatabase:     "Something went wrong while saving",
	},
	language.Russian: {
		KindValidation:   "Проверьте выделенное поле",
		KindDuplicate:    "Такая запись уже существует",
		KindNotFound:     "Запись не найдена",
		KindUnauthorized: "Недостаточно прав для выполнения действия",
		KindAPIFetch:     "Не удалось получить слово из словаря",
		KindJSONParse:    "Не удалось разобрать JSON",
		KindDatabase:     "Ошибка при сохранении",
	},
}

func matchLocale(locale string) language.Tag {
	if locale == "" {
		return language.English
	}
	tags, _, err := language.ParseAcceptLanguage(locale)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, _ := matcher.Match(tags...)
	return supported[idx]
}

func message(tag language.Tag, kind Kind) string {
	if msgs, ok := catalog[tag]; ok {
		if m, ok := msgs[kind]; ok {
			return m
		}
	}
	return catalog[language.English][KindDatabase]
}
