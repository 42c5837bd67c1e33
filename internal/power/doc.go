// Package power reads the host machine's battery and feeds it to the
// emulated device.
//
// On Linux the kernel exposes each power supply under
// /sys/class/power_supply/<name>/ with plain-text attribute files. A supply
// whose "type" is "Battery" provides "capacity" (0-100) and "status"
// ("Charging", "Discharging", "Full", "Not charging", "Unknown"). Mains
// supplies report "online".
//
// Machines without a battery use a Static source.
package power
