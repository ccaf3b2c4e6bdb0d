package publisher

var StreamValues = streamValues
