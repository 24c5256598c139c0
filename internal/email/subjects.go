package email

const subjectHandoffFmt = "New %s intake ready — %s"
