package main

type Notifier interface {
	NotifySyncResults(Settings, *ResultMap) error
}
