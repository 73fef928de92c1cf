package cli

const asciiLogo = ` ____   ___  ____  ____ ___ __  __
|  _ \ / _ \/ ___|/ ___|_ _|  \/  |
| | | | | | \___ \\___ \| || |\/| |
| |_| | |_| |___) |___) | || |  | |
|____/ \___/|____/|____/___|_|  |_|`
